package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ValidMoods = []string{"angry", "anxious", "sad", "stressed", "neutral", "happy"}

func IsValidMood(mood string) bool {
	for _, m := range ValidMoods {
		if m == mood {
			return true
		}
	}
	return false
}

// Reflection is a dated mood journal entry, optionally linked to a catalog
// question.
type Reflection struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	QuestionID *uuid.UUID `json:"questionId" gorm:"type:uuid"`
	Mood       string     `json:"mood" gorm:"not null"`
	Note       *string    `json:"note" gorm:"size:300"`
	Date       time.Time  `json:"date"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	return nil
}

// Reflection DTOs
type CreateReflectionRequest struct {
	Mood       string  `json:"mood"`
	Note       *string `json:"note"`
	Date       *string `json:"date"`
	QuestionID *string `json:"questionId"`
}

type UpdateReflectionRequest struct {
	Mood       *string `json:"mood"`
	Note       *string `json:"note"`
	Date       *string `json:"date"`
	QuestionID *string `json:"questionId"`
}
