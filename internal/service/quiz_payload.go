package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"sals_backend/internal/concept"
	"sals_backend/internal/llm"
	"sals_backend/internal/model"
)

// payloadQuestion covers both the diagnostic and the final quiz item shapes.
type payloadQuestion struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer"`
	CorrectAnswer   string   `json:"correct_answer"`
	Concept         string   `json:"concept"`
	ConceptTested   string   `json:"concept_tested"`
	Difficulty      string   `json:"difficulty"`
	Explanation     string   `json:"explanation"`
	IsReinforcement bool     `json:"is_reinforcement"`
}

type payloadQuiz struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []payloadQuestion `json:"questions"`
}

// parseQuizPayload validates and normalizes a quiz reply. Both the bare
// question array and the titled object are accepted.
func parseQuizPayload(raw string) (*payloadQuiz, model.Questions, error) {
	var doc json.RawMessage
	if err := llm.UnpackValidated(raw, llm.QuizSchema, &doc); err != nil {
		return nil, nil, err
	}

	var pq payloadQuiz
	if trimmed := bytes.TrimSpace(doc); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &pq.Questions); err != nil {
			return nil, nil, &llm.MalformedResponse{Raw: raw, Err: err}
		}
	} else if err := json.Unmarshal(trimmed, &pq); err != nil {
		return nil, nil, &llm.MalformedResponse{Raw: raw, Err: err}
	}

	questions := make(model.Questions, 0, len(pq.Questions))
	for i, item := range pq.Questions {
		q, err := item.normalize()
		if err != nil {
			return nil, nil, &llm.MalformedResponse{Raw: raw, Err: fmt.Errorf("question %d: %w", i+1, err)}
		}
		questions = append(questions, q)
	}
	return &pq, questions, nil
}

func (p payloadQuestion) normalize() (model.Question, error) {
	if len(p.Options) != model.OptionCount {
		return model.Question{}, fmt.Errorf("expected %d options, got %d", model.OptionCount, len(p.Options))
	}

	key := p.Answer
	if key == "" {
		key = p.CorrectAnswer
	}
	answer, err := model.ResolveChoice(key, p.Options)
	if err != nil {
		return model.Question{}, err
	}

	name := p.Concept
	if name == "" {
		name = p.ConceptTested
	}
	name, err = concept.Normalize(name)
	if err != nil {
		return model.Question{}, err
	}

	difficulty, ok := model.ParseDifficulty(p.Difficulty)
	if !ok {
		difficulty = model.DifficultyMedium
	}

	if p.Question == "" {
		return model.Question{}, errors.New("empty question text")
	}

	return model.Question{
		Text:            p.Question,
		Options:         p.Options,
		CorrectAnswer:   answer,
		Concept:         name,
		Difficulty:      difficulty,
		Explanation:     p.Explanation,
		IsReinforcement: p.IsReinforcement,
	}, nil
}

// parseLearningPathPayload turns a learning path reply into materials.
func parseLearningPathPayload(raw string) (model.Materials, error) {
	var materials model.Materials
	if err := llm.UnpackValidated(raw, llm.LearningPathSchema, &materials); err != nil {
		return nil, err
	}
	for i := range materials {
		name, err := concept.Normalize(materials[i].Concept)
		if err != nil {
			return nil, &llm.MalformedResponse{Raw: raw, Err: fmt.Errorf("material %d: %w", i+1, err)}
		}
		materials[i].Concept = name
	}
	return materials, nil
}
