package repository

import (
	"sals_backend/internal/model"
	"sals_backend/internal/progress"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the single progress record of a topic.
func (r *ProgressRepository) GetOrCreate(topicID uint) (*model.Progress, error) {
	p := model.Progress{TopicID: topicID}
	err := r.DB.Where(model.Progress{TopicID: topicID}).
		Attrs(model.Progress{Stage: progress.StageNotStarted}).
		FirstOrCreate(&p).Error
	return &p, err
}

func (r *ProgressRepository) FindByTopic(topicID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.Preload("Topic").Where("topic_id = ?", topicID).First(&p).Error
	return &p, err
}

// Save writes every column. Concurrent writers for one topic race and the
// last one wins.
func (r *ProgressRepository) Save(p *model.Progress) error {
	return r.DB.Omit(clause.Associations).Save(p).Error
}

func (r *ProgressRepository) List() ([]model.Progress, error) {
	var ps []model.Progress
	err := r.DB.Preload("Topic").Order("updated_at desc").Find(&ps).Error
	return ps, err
}
