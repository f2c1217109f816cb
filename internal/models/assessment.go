package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentResponse is one validated answer inside a snapshot.
type AssessmentResponse struct {
	QuestionID   uuid.UUID `json:"questionId"`
	Category     string    `json:"category"`
	NeedKey      string    `json:"needKey,omitempty"`
	NeedLabel    string    `json:"needLabel,omitempty"`
	MainScore    int       `json:"mainScore"`
	QualityScore *int      `json:"qualityScore,omitempty"`
	VolumeScore  *int      `json:"volumeScore,omitempty"`
}

// NeedScore is the aggregated score for one need within a snapshot.
type NeedScore struct {
	Score     float64 `json:"score"`
	NeedLabel string  `json:"needLabel"`
	Category  string  `json:"category"`
}

// Assessment is an immutable snapshot of one submission. It is created in
// the same transaction as the user's hasCompletedAssessment flag and never
// mutated afterwards; newer snapshots supersede it.
type Assessment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	CompletedAt time.Time `json:"completedAt"`

	Responses      []AssessmentResponse `json:"responses" gorm:"serializer:json"`
	CategoryScores map[string]float64   `json:"categoryScores" gorm:"serializer:json"`
	NeedScores     map[string]NeedScore `json:"needScores" gorm:"serializer:json"`
	OverallScore   float64              `json:"overallScore"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SubmitAssessmentRequest carries raw client answers. selectedOption and the
// optional sub-responses are deliberately untyped: malformed entries are
// dropped during validation rather than failing the whole submission.
type SubmitAssessmentRequest struct {
	Responses []RawResponse `json:"responses"`
}

type RawResponse struct {
	QuestionID      string `json:"questionId"`
	SelectedOption  any    `json:"selectedOption"`
	QualityResponse any    `json:"qualityResponse"`
	VolumeResponse  any    `json:"volumeResponse"`
}
