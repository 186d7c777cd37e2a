package repository

import (
	"sals_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

// GetOrCreate returns the topic called name, creating it on first use.
func (r *TopicRepository) GetOrCreate(name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where(model.Topic{Name: name}).FirstOrCreate(&topic).Error
	return &topic, err
}

func (r *TopicRepository) FindByName(name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("name = ?", name).First(&topic).Error
	return &topic, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) List() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("name asc").Find(&topics).Error
	return topics, err
}
