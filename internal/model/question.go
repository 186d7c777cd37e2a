package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidChoice = errors.New("choice must be one of A, B, C, D")

// Choice is a multiple-choice answer letter. NoAnswer marks an absent answer.
type Choice string

const (
	ChoiceA  Choice = "A"
	ChoiceB  Choice = "B"
	ChoiceC  Choice = "C"
	ChoiceD  Choice = "D"
	NoAnswer Choice = ""
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

var choices = []Choice{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// ParseChoice accepts "a", " B " etc. An empty string yields NoAnswer.
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD, NoAnswer:
		return c, nil
	}
	return NoAnswer, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

// ParseAnswerText also accepts an option label followed by its text, such as
// "B) Binary Search" or "c. Heap".
func ParseAnswerText(s string) (Choice, error) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && strings.ContainsRune(").:", rune(t[1])) {
		if c, err := ParseChoice(t[:1]); err == nil && c != NoAnswer {
			return c, nil
		}
	}
	return ParseChoice(t)
}

// ResolveChoice maps an answer key to a letter. The key may be a letter, a
// labeled option or the full text of one of options.
func ResolveChoice(key string, options []string) (Choice, error) {
	if c, err := ParseAnswerText(key); err == nil && c != NoAnswer {
		return c, nil
	}
	want := strings.ToLower(stripLabel(key))
	if want != "" {
		for i, opt := range options {
			if strings.ToLower(stripLabel(opt)) == want {
				c, _ := ChoiceAt(i)
				return c, nil
			}
		}
	}
	return NoAnswer, fmt.Errorf("%w: %q matches no option", ErrInvalidChoice, key)
}

func stripLabel(s string) string {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && strings.ContainsRune(").:", rune(t[1])) {
		if _, err := ParseChoice(t[:1]); err == nil {
			return strings.TrimSpace(t[2:])
		}
	}
	return t
}

// ChoiceAt returns the letter for option index i.
func ChoiceAt(i int) (Choice, bool) {
	if i < 0 || i >= len(choices) {
		return NoAnswer, false
	}
	return choices[i], true
}

func (c Choice) MarshalJSON() ([]byte, error) {
	if c == NoAnswer {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// Question is one multiple-choice item of a quiz.
type Question struct {
	Text            string     `json:"question"`
	Options         []string   `json:"options"`
	CorrectAnswer   Choice     `json:"correct_answer"`
	Concept         string     `json:"concept"`
	Difficulty      Difficulty `json:"difficulty"`
	Explanation     string     `json:"explanation,omitempty"`
	IsReinforcement bool       `json:"is_reinforcement,omitempty"`
}

// Questions is stored as a JSON column on Quiz.
type Questions []Question

func (Questions) GormDataType() string { return "json" }

func (q Questions) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal(q)
	return string(b), err
}

func (q *Questions) Scan(value interface{}) error {
	return scanJSON(value, q)
}

// Answers is the ordered list of submitted choices, stored as JSON.
type Answers []Choice

func (Answers) GormDataType() string { return "json" }

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *Answers) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// ParseAnswers normalizes raw answers against the quiz questions; nil or
// blank entries are absent answers. An answer may also be the text of one of
// the question's options.
func ParseAnswers(raw []*string, questions []Question) (Answers, error) {
	out := make(Answers, len(raw))
	for i, r := range raw {
		if r == nil || strings.TrimSpace(*r) == "" {
			continue
		}
		var options []string
		if i < len(questions) {
			options = questions[i].Options
		}
		c, err := ResolveChoice(*r, options)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func scanJSON(value interface{}, dst interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dst)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
