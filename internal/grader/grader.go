// Package grader turns a submitted answer sheet into the set of concepts the
// student got wrong.
package grader

import (
	"errors"
	"fmt"

	"sals_backend/internal/concept"
	"sals_backend/internal/model"
)

var ErrInvalidInput = errors.New("invalid input")

// Options controls how unanswered trailing questions are graded.
type Options struct {
	// CountMissingAsWrong grades questions past the end of the answer sheet as
	// wrong. When false they are skipped, as if the two lists had been zipped.
	CountMissingAsWrong bool
}

func DefaultOptions() Options {
	return Options{CountMissingAsWrong: true}
}

// Result is the detailed outcome of grading one answer sheet.
type Result struct {
	Weak concept.Set
	// Correct has one entry per graded question, in question order.
	Correct      []bool
	CorrectCount int
	Graded       int
}

// Score is the percentage of graded questions answered correctly.
func (r Result) Score() float64 {
	if r.Graded == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.Graded) * 100
}

// Grade returns the concepts of every question whose answer is absent or wrong.
func Grade(questions []model.Question, submitted []model.Choice, opts Options) (concept.Set, error) {
	r, err := GradeDetailed(questions, submitted, opts)
	if err != nil {
		return concept.Set{}, err
	}
	return r.Weak, nil
}

func GradeDetailed(questions []model.Question, submitted []model.Choice, opts Options) (Result, error) {
	if len(submitted) > len(questions) {
		return Result{}, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidInput, len(submitted), len(questions))
	}

	n := len(questions)
	if !opts.CountMissingAsWrong {
		n = len(submitted)
	}

	res := Result{Weak: concept.NewSet(), Correct: make([]bool, 0, n)}
	for i := 0; i < n; i++ {
		q := questions[i]
		if _, err := concept.Normalize(q.Concept); err != nil {
			return Result{}, fmt.Errorf("%w: question %d: %w", ErrInvalidInput, i, err)
		}
		key, err := model.ParseChoice(string(q.CorrectAnswer))
		if err != nil || key == model.NoAnswer {
			return Result{}, fmt.Errorf("%w: question %d has no valid correct answer %q", ErrInvalidInput, i, q.CorrectAnswer)
		}

		answer := model.NoAnswer
		if i < len(submitted) {
			answer, err = model.ParseChoice(string(submitted[i]))
			if err != nil {
				return Result{}, fmt.Errorf("%w: answer %d: %w", ErrInvalidInput, i, err)
			}
		}

		ok := answer != model.NoAnswer && answer == key
		res.Correct = append(res.Correct, ok)
		res.Graded++
		if ok {
			res.CorrectCount++
			continue
		}
		_ = res.Weak.Add(q.Concept)
	}
	return res, nil
}
