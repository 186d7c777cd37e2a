package repository

import (
	"time"

	"sals_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Create(path).Error
}

func (r *LearningPathRepository) FindByID(id uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.First(&path, id).Error
	return &path, err
}

func (r *LearningPathRepository) ListByTopic(topicID uint) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Where("topic_id = ?", topicID).Order("created_at desc").Find(&paths).Error
	return paths, err
}

// MarkCompleted flags the path as worked through. Completing twice keeps the
// first timestamp.
func (r *LearningPathRepository) MarkCompleted(id uint, at time.Time) error {
	return r.DB.Model(&model.LearningPath{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{"completed": true, "completed_at": at}).Error
}
