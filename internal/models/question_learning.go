package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionLearning is one piece of educational content linked to a catalog
// question. At most one active row per question.
type QuestionLearning struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionID      uuid.UUID `json:"questionId" gorm:"type:uuid;uniqueIndex;not null"`
	Title           string    `json:"title" gorm:"not null"`
	Content         string    `json:"content" gorm:"type:text"`
	LearningType    string    `json:"learningType" gorm:"default:general"` // health, vitality, general
	ThumbnailURL    *string   `json:"thumbnailUrl"`
	ReadTimeMinutes int       `json:"readTimeMinutes" gorm:"default:5"`
	IsActive        bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ql *QuestionLearning) BeforeCreate(tx *gorm.DB) error {
	if ql.ID == uuid.Nil {
		ql.ID = uuid.New()
	}
	return nil
}
