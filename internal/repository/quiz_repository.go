package repository

import (
	"sals_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindByID loads a quiz together with its topic.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Topic").First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) ListByTopic(topicID uint, finalOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("topic_id = ?", topicID)
	if finalOnly {
		query = query.Where("is_final_quiz = ?", true)
	}
	err := query.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// FindAttemptByID loads an attempt with its quiz and the quiz topic.
func (r *QuizRepository) FindAttemptByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Preload("Quiz").Preload("Quiz.Topic").First(&attempt, id).Error
	return &attempt, err
}

func (r *QuizRepository) ListAttempts(quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("quiz_id = ?", quizID).Order("completed_at asc").Find(&attempts).Error
	return attempts, err
}
