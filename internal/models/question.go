package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeSingleChoice = "SINGLE_CHOICE"
	QuestionTypeShortText    = "SHORT_TEXT"
)

type Question struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID string `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Type   string `gorm:"size:20;not null" json:"type"`
	// Only set for SINGLE_CHOICE questions.
	Options  datatypes.JSONSlice[string] `json:"options,omitempty"`
	OrderNum int                         `gorm:"not null" json:"order"`
	Required bool                        `gorm:"not null;default:true" json:"required"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
