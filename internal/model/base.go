package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func GenerateUUID() string {
	return uuid.New().String()
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Topic{},
		&Quiz{},
		&QuizAttempt{},
		&LearningPath{},
		&Progress{},
	}
}
