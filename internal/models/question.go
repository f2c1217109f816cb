package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The five fixed need categories, in pyramid order (bottom to top).
const (
	CategorySurvival  = "Survival"
	CategorySafety    = "Safety"
	CategorySocial    = "Social"
	CategorySelf      = "Self"
	CategoryMetaNeeds = "Meta-Needs"
)

var CategoryOrder = []string{
	CategorySurvival,
	CategorySafety,
	CategorySocial,
	CategorySelf,
	CategoryMetaNeeds,
}

func IsValidCategory(category string) bool {
	for _, c := range CategoryOrder {
		if c == category {
			return true
		}
	}
	return false
}

// Question is a need-catalog entry: the primary statement for one need plus
// its paired quality/volume sub-questions. Admin-managed, rarely mutated.
// needKey is only unique within a category — lookups must always match on
// (category, need_key) together.
type Question struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionText string    `json:"questionText" gorm:"not null"`
	Category     string    `json:"category" gorm:"not null;index:idx_questions_category_need"`
	NeedKey      string    `json:"needKey" gorm:"index:idx_questions_category_need"`
	NeedLabel    string    `json:"needLabel"`
	NeedOrder    int       `json:"needOrder" gorm:"default:0"`
	SectionOrder int       `json:"sectionOrder" gorm:"default:0"`

	// Generic 1–7 Likert options for the primary statement.
	AnswerOptions []string `json:"answerOptions" gorm:"serializer:json"`

	// Per-need quality/volume sub-questions with custom 7-option scales
	// (index 0 = worst, 6 = best).
	QualityPrompt string   `json:"qualityPrompt"`
	QualityScale  []string `json:"qualityScale" gorm:"serializer:json"`
	VolumePrompt  string   `json:"volumePrompt"`
	VolumeScale   []string `json:"volumeScale" gorm:"serializer:json"`

	IsActive bool `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// NeedOption is the catalog view served to goal-creation dropdowns.
type NeedOption struct {
	NeedKey    string    `json:"needKey"`
	NeedLabel  string    `json:"needLabel"`
	NeedOrder  int       `json:"needOrder"`
	Category   string    `json:"category"`
	QuestionID uuid.UUID `json:"questionId"`
}

// DefaultAnswerOptions is the generic Likert scale used when a question has
// no custom options.
var DefaultAnswerOptions = []string{
	"1 - Not at all true",
	"2 - Rarely true",
	"3 - Occasionally true",
	"4 - Somewhat true",
	"5 - Often true",
	"6 - Mostly true",
	"7 - Completely true",
}
