package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Response struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID    string    `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz      Quiz      `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Answers   []Answer  `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
