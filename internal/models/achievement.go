package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnlockedAchievement is one earned streak-milestone badge. Entries are
// append-only: once earned, a badge is never removed even if the streak
// later drops.
type UnlockedAchievement struct {
	AchievementID   string    `json:"id"`
	AchievementName string    `json:"name"`
	BadgeType       string    `json:"badgeType"`
	UnlockedAt      time.Time `json:"unlockedAt"`
}

// ActivityCounts are denormalized counters recomputed wholesale on every
// recalculation, never incremented in place.
type ActivityCounts struct {
	AssessmentsCompleted int `json:"assessmentsCompleted"`
	GoalsCompleted       int `json:"goalsCompleted"`
	ReflectionsCreated   int `json:"reflectionsCreated"`
	DaysActive           int `json:"daysActive"`
}

// Achievement is the single derived achievement record per user.
type Achievement struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`

	TotalPoints       int    `json:"totalPoints" gorm:"default:0"`
	CurrentBadgeLevel int    `json:"currentBadgeLevel" gorm:"default:1"`
	CurrentBadgeName  string `json:"currentBadgeName" gorm:"default:Bronze"`

	FocusStreak      int        `json:"focusStreak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"lastActivityDate"`

	UnlockedAchievements []UnlockedAchievement `json:"unlockedAchievements" gorm:"serializer:json"`
	ActivityCounts       ActivityCounts        `json:"activityCounts" gorm:"serializer:json"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
