package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"sals_backend/internal/concept"
)

// Material is the guidance generated for one weak concept.
type Material struct {
	Concept     string `json:"concept"`
	Explanation string `json:"explanation"`
	Resource    string `json:"resource"`
}

type Materials []Material

func (Materials) GormDataType() string { return "json" }

func (m Materials) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *Materials) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	TopicID       uint        `gorm:"index;not null" json:"topicId"`
	QuizAttemptID uint        `gorm:"index" json:"quizAttemptId"`
	WeakConcepts  concept.Set `json:"weakConcepts"`
	AllConcepts   concept.Set `json:"allConcepts"`
	Materials     Materials   `json:"learningMaterials"`
	Completed     bool        `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}
