package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sals_backend/internal/model"
	"sals_backend/internal/progress"
)

// SubmittedAnswers decodes an answer sheet. Each entry may be a letter, a
// labeled option ("B) Queue"), null for no answer, or an object
// {"question_id": 3, "answer": "B"} that places the answer by index.
type SubmittedAnswers []*string

// maxAnswers bounds an answer sheet; no quiz carries more questions.
const maxAnswers = 100

type indexedAnswer struct {
	QuestionID json.RawMessage `json:"question_id"`
	Answer     *string         `json:"answer"`
}

func (a *SubmittedAnswers) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	if len(items) > maxAnswers {
		return fmt.Errorf("too many answers: %d", len(items))
	}

	out := make(SubmittedAnswers, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		switch {
		case bytes.Equal(item, []byte("null")):
		case len(item) > 0 && item[0] == '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out[i] = &s
		case len(item) > 0 && item[0] == '{':
			var ia indexedAnswer
			if err := json.Unmarshal(item, &ia); err != nil {
				return err
			}
			idx := i
			if len(ia.QuestionID) > 0 {
				n, err := strconv.Atoi(strings.Trim(string(ia.QuestionID), `"`))
				if err != nil || n < 0 || n >= maxAnswers {
					return fmt.Errorf("answer %d: invalid question_id %s", i, ia.QuestionID)
				}
				idx = n
			}
			for idx >= len(out) {
				out = append(out, nil)
			}
			out[idx] = ia.Answer
		default:
			return fmt.Errorf("answer %d: expected string, null or object", i)
		}
	}
	*a = out
	return nil
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID      uint             `json:"quiz_id" binding:"required"`
	UserAnswers SubmittedAnswers `json:"user_answers" swaggertype:"array,string"`
}

// swagger:model LearningPathRequest
type LearningPathRequest struct {
	QuizAttemptID uint     `json:"quiz_attempt_id" binding:"required"`
	WeakConcepts  []string `json:"weak_concepts"`
}

// swagger:model FinalQuizRequest
type FinalQuizRequest struct {
	Topic        string   `json:"topic"`
	WeakConcepts []string `json:"weak_concepts"`
}

// GeneratedQuiz is a stored quiz together with the payload shown to the client.
type GeneratedQuiz struct {
	Quiz               *model.Quiz      `json:"-"`
	QuizID             uint             `json:"quiz_id"`
	Title              string           `json:"title,omitempty"`
	Description        string           `json:"description,omitempty"`
	Questions          []model.Question `json:"questions"`
	InitialWeakConcept []string         `json:"initial_weak_concepts,omitempty"`
}

// swagger:model AttemptResult
type AttemptResult struct {
	QuizAttemptID uint          `json:"quiz_attempt_id"`
	QuizID        uint          `json:"quiz_id"`
	UserAnswers   model.Answers `json:"user_answers"`
	WeakConcepts  []string      `json:"weak_concepts"`
	Score         float64       `json:"score"`
	Correct       []bool        `json:"correct,omitempty"`
}

// swagger:model ImprovementMetrics
type ImprovementMetrics struct {
	ImprovementPercentage *float64 `json:"improvement_percentage"`
	ImprovedConcepts      []string `json:"improved_concepts"`
	StillWeakConcepts     []string `json:"still_weak_concepts"`
	NewWeakConcepts       []string `json:"new_weak_concepts"`
	TotalConcepts         int      `json:"total_concepts"`
}

func newImprovementMetrics(r progress.Report, pct *float64) ImprovementMetrics {
	return ImprovementMetrics{
		ImprovementPercentage: pct,
		ImprovedConcepts:      r.Improved.Names(),
		StillWeakConcepts:     r.StillWeak.Names(),
		NewWeakConcepts:       r.NewlyWeak.Names(),
		TotalConcepts:         r.Total,
	}
}

// swagger:model FinalResult
type FinalResult struct {
	Message            string             `json:"message"`
	QuizAttemptID      uint               `json:"quiz_attempt_id"`
	Score              float64            `json:"score"`
	WeakConcepts       []string           `json:"weak_concepts"`
	ImprovementMetrics ImprovementMetrics `json:"improvement_metrics"`
	Degraded           bool               `json:"degraded"`
	Warning            string             `json:"warning,omitempty"`
	DetailedFeedback   string             `json:"detailed_feedback"`
	ReportURL          string             `json:"report_url,omitempty"`
}

// swagger:model LearningPathResult
type LearningPathResult struct {
	LearningPathID uint            `json:"learning_path_id"`
	LearningPath   model.Materials `json:"learning_path"`
	WeakConcepts   []string        `json:"weak_concepts"`
	AllConcepts    []string        `json:"all_concepts"`
	Completed      bool            `json:"completed"`
	Cached         bool            `json:"cached"`
}

// swagger:model ProgressView
type ProgressView struct {
	Topic                string         `json:"topic"`
	Stage                progress.Stage `json:"stage"`
	InitialQuizAttemptID *uint          `json:"initial_quiz_attempt_id"`
	LearningPathID       *uint          `json:"learning_path_id"`
	FinalQuizAttemptID   *uint          `json:"final_quiz_attempt_id"`
	ProgressPercentage   *float64       `json:"progress_percentage"`
	InitialWeakConcepts  []string       `json:"initial_weak_concepts"`
	ImprovedConcepts     []string       `json:"improved_concepts"`
	StillWeakConcepts    []string       `json:"still_weak_concepts"`
	NewWeakConcepts      []string       `json:"new_weak_concepts"`
	ReportURL            string         `json:"report_url,omitempty"`
}
