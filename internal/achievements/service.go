package achievements

import (
	"time"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service recomputes achievement state from a user's activity rows.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Recalculate rebuilds the user's achievement record from scratch: activity
// counts, points, badge tier, focus streak, and any newly earned streak
// badges. Calling it twice with no new activity yields identical state, and
// concurrent invocations converge because unlocks are appended by id, never
// by position.
func (s *Service) Recalculate(userID uuid.UUID) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.db.Where("user_id = ?", userID).First(&achievement).Error
	if err != nil {
		achievement = models.Achievement{
			UserID:            userID,
			CurrentBadgeLevel: 1,
			CurrentBadgeName:  "Bronze",
		}
	}

	var assessments []models.Assessment
	if err := s.db.Select("completed_at", "created_at").
		Where("user_id = ?", userID).Find(&assessments).Error; err != nil {
		return nil, err
	}

	var completedGoals []models.Goal
	if err := s.db.Select("completed_at", "updated_at").
		Where("user_id = ? AND is_completed = ?", userID, true).Find(&completedGoals).Error; err != nil {
		return nil, err
	}

	var reflections []models.Reflection
	if err := s.db.Select("date", "created_at").
		Where("user_id = ?", userID).Find(&reflections).Error; err != nil {
		return nil, err
	}

	var activityDates []time.Time
	for _, a := range assessments {
		if !a.CompletedAt.IsZero() {
			activityDates = append(activityDates, a.CompletedAt)
		} else {
			activityDates = append(activityDates, a.CreatedAt)
		}
	}
	for _, g := range completedGoals {
		if g.CompletedAt != nil {
			activityDates = append(activityDates, *g.CompletedAt)
		} else {
			activityDates = append(activityDates, g.UpdatedAt)
		}
	}
	for _, r := range reflections {
		if !r.Date.IsZero() {
			activityDates = append(activityDates, r.Date)
		} else {
			activityDates = append(activityDates, r.CreatedAt)
		}
	}

	days := DistinctDays(activityDates)
	streak := FocusStreak(days, s.now())

	achievement.ActivityCounts = models.ActivityCounts{
		AssessmentsCompleted: len(assessments),
		GoalsCompleted:       len(completedGoals),
		ReflectionsCreated:   len(reflections),
		DaysActive:           len(days),
	}
	achievement.FocusStreak = streak
	achievement.TotalPoints = len(assessments)*PointsPerAssessment +
		len(completedGoals)*PointsPerGoal +
		len(reflections)*PointsPerReflection +
		len(days)*PointsPerActiveDay +
		streak*PointsPerStreakDay

	badge := BadgeFor(achievement.TotalPoints)
	achievement.CurrentBadgeLevel = badge.Level
	achievement.CurrentBadgeName = badge.Name

	if len(days) > 0 {
		last := days[0]
		achievement.LastActivityDate = &last
	}

	achievement.UnlockedAchievements = append(achievement.UnlockedAchievements,
		NewStreakUnlocks(streak, achievement.UnlockedAchievements, s.now())...)

	if err := s.db.Save(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}
