package model

// swagger:model Topic
type Topic struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Topic) TableName() string {
	return "topics"
}
