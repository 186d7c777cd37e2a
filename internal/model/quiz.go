package model

import (
	"time"

	"sals_backend/internal/concept"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	TopicID     uint      `gorm:"index;not null" json:"topicId"`
	Topic       *Topic    `json:"topic,omitempty"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Questions   Questions `json:"questions"`
	IsFinalQuiz bool      `gorm:"default:false" json:"isFinalQuiz"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Concepts returns every concept the quiz tests.
func (q *Quiz) Concepts() concept.Set {
	s := concept.NewSet()
	for _, question := range q.Questions {
		_ = s.Add(question.Concept)
	}
	return s
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID       uint        `gorm:"index;not null" json:"quizId"`
	Quiz         *Quiz       `json:"quiz,omitempty"`
	UserAnswers  Answers     `json:"userAnswers"`
	Score        float64     `gorm:"default:0" json:"score"`
	WeakConcepts concept.Set `json:"weakConcepts"`
	CompletedAt  time.Time   `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
