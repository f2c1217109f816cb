package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a level-based improvement goal, optionally anchored to a catalog
// need. Need metadata is denormalized onto the row and kept as last-known-good
// if the catalog entry later changes.
type Goal struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description"`
	UserNotes   string    `json:"userNotes" gorm:"size:500"`

	Category   string     `json:"category" gorm:"not null"`
	NeedKey    *string    `json:"needKey"`
	NeedLabel  *string    `json:"needLabel"`
	NeedOrder  *int       `json:"needOrder"`
	QuestionID *uuid.UUID `json:"questionId" gorm:"type:uuid"`

	// 1–7 scale; targetLevel >= currentLevel always holds.
	CurrentLevel int `json:"currentLevel" gorm:"not null;default:1"`
	TargetLevel  int `json:"targetLevel" gorm:"not null;default:7"`

	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`

	IsCompleted bool       `json:"isCompleted" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	UserNotes    *string `json:"userNotes"`
	Category     string  `json:"category"`
	NeedKey      *string `json:"needKey"`
	CurrentLevel *int    `json:"currentLevel"`
	TargetLevel  *int    `json:"targetLevel"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

type UpdateGoalRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	UserNotes    *string `json:"userNotes"`
	Category     *string `json:"category"`
	NeedKey      *string `json:"needKey"`
	CurrentLevel *int    `json:"currentLevel"`
	TargetLevel  *int    `json:"targetLevel"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	IsCompleted  *bool   `json:"isCompleted"`
}
