package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	Age       *int      `json:"age"`

	HasCompletedAssessment bool       `json:"hasCompletedAssessment" gorm:"default:false"`
	AssessmentCompletedAt  *time.Time `json:"assessmentCompletedAt"`

	SubscriptionType string `json:"subscriptionType" gorm:"default:Free"`

	CoachingOfferEligible    bool       `json:"coachingOfferEligible" gorm:"default:false"`
	CoachingOfferTriggeredAt *time.Time `json:"coachingOfferTriggeredAt"`

	// Push notification state
	FCMToken                 string     `json:"-" gorm:"column:fcm_token"`
	GoalReminders            bool       `json:"goalReminders" gorm:"default:true"`
	AssessmentReminders      bool       `json:"assessmentReminders" gorm:"default:true"`
	AssessmentReminderSentAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name                *string `json:"name"`
	AvatarURL           *string `json:"avatarUrl"`
	Age                 *int    `json:"age"`
	GoalReminders       *bool   `json:"goalReminders"`
	AssessmentReminders *bool   `json:"assessmentReminders"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
