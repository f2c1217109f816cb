package jobs

import (
	"testing"
	"time"

	"github.com/ascendapp/ascend-api/internal/database"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testScheduler(t *testing.T, now time.Time) (*Scheduler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	s := NewScheduler(db, services.NewNotifier(db, services.NewPushService(db, "")))
	s.now = func() time.Time { return now }
	return s, db
}

func notificationCount(db *gorm.DB, notifType string) int64 {
	var count int64
	db.Model(&models.Notification{}).Where("type = ?", notifType).Count(&count)
	return count
}

func TestRunGoalReminders(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s, db := testScheduler(t, now)

	dueToday := now.Add(5 * time.Hour)
	dueTomorrow := now.AddDate(0, 0, 1)

	user := models.User{Email: "due@test.com", GoalReminders: true, AssessmentReminders: true}
	require.NoError(t, db.Create(&user).Error)
	optedOut := models.User{Email: "optout@test.com", AssessmentReminders: true}
	require.NoError(t, db.Create(&optedOut).Error)
	require.NoError(t, db.Model(&optedOut).Update("goal_reminders", false).Error)

	for _, g := range []models.Goal{
		{UserID: user.ID, Title: "Due today", Category: "Survival", CurrentLevel: 1, TargetLevel: 3, EndDate: &dueToday},
		{UserID: user.ID, Title: "Due tomorrow", Category: "Survival", CurrentLevel: 1, TargetLevel: 3, EndDate: &dueTomorrow},
		{UserID: user.ID, Title: "Already done", Category: "Survival", CurrentLevel: 1, TargetLevel: 3, EndDate: &dueToday, IsCompleted: true},
		{UserID: optedOut.ID, Title: "Opted out", Category: "Survival", CurrentLevel: 1, TargetLevel: 3, EndDate: &dueToday},
	} {
		goal := g
		require.NoError(t, db.Create(&goal).Error)
	}

	require.NoError(t, s.RunGoalReminders())

	// Only the incomplete goal due today for the opted-in user fires.
	assert.Equal(t, int64(1), notificationCount(db, "goal_reminder"))

	var notif models.Notification
	require.NoError(t, db.Where("type = ?", "goal_reminder").First(&notif).Error)
	assert.Equal(t, user.ID, notif.UserID)
	assert.Contains(t, notif.Body, "Due today")
}

func TestRunAssessmentReminders(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	s, db := testScheduler(t, now)

	fresh := now.Add(-24 * time.Hour)
	stale := now.Add(-5 * 24 * time.Hour)

	never := models.User{Email: "never@test.com", GoalReminders: true, AssessmentReminders: true}
	require.NoError(t, db.Create(&never).Error)

	recent := models.User{
		Email: "recent@test.com", GoalReminders: true, AssessmentReminders: true,
		HasCompletedAssessment: true, AssessmentCompletedAt: &fresh,
	}
	require.NoError(t, db.Create(&recent).Error)

	lapsed := models.User{
		Email: "lapsed@test.com", GoalReminders: true, AssessmentReminders: true,
		HasCompletedAssessment: true, AssessmentCompletedAt: &stale,
	}
	require.NoError(t, db.Create(&lapsed).Error)

	muted := models.User{
		Email: "muted@test.com", GoalReminders: true,
		HasCompletedAssessment: true, AssessmentCompletedAt: &stale,
	}
	require.NoError(t, db.Create(&muted).Error)
	require.NoError(t, db.Model(&muted).Update("assessment_reminders", false).Error)

	require.NoError(t, s.RunAssessmentReminders())

	// The never-assessed and the lapsed user get nudged; the recent and the
	// muted do not.
	assert.Equal(t, int64(2), notificationCount(db, "assessment_reminder"))

	var u models.User
	require.NoError(t, db.First(&u, lapsed.ID).Error)
	require.NotNil(t, u.AssessmentReminderSentAt)
}

func TestRunAssessmentRemindersThrottled(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	s, db := testScheduler(t, now)

	user := models.User{Email: "throttle@test.com", GoalReminders: true, AssessmentReminders: true}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, s.RunAssessmentReminders())
	require.Equal(t, int64(1), notificationCount(db, "assessment_reminder"))

	// A second run within 24 hours stays silent.
	require.NoError(t, s.RunAssessmentReminders())
	assert.Equal(t, int64(1), notificationCount(db, "assessment_reminder"))

	// Past the throttle window it fires again.
	s.now = func() time.Time { return now.Add(25 * time.Hour) }
	require.NoError(t, s.RunAssessmentReminders())
	assert.Equal(t, int64(2), notificationCount(db, "assessment_reminder"))
}
