package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Answer struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ResponseID string    `gorm:"type:uuid;not null;index" json:"response_id"`
	QuestionID string    `gorm:"type:uuid;not null" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Value      string    `gorm:"type:text;not null" json:"value"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
