package jobs

import (
	"log"
	"time"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the daily reminder jobs. All times are UTC.
type Scheduler struct {
	db       *gorm.DB
	notifier *services.Notifier
	cron     *cron.Cron
	now      func() time.Time
}

func NewScheduler(db *gorm.DB, notifier *services.Notifier) *Scheduler {
	return &Scheduler{
		db:       db,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		now:      time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", func() {
		if err := s.RunGoalReminders(); err != nil {
			log.Printf("goal reminders: %v", err)
		}
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 10 * * *", func() {
		if err := s.RunAssessmentReminders(); err != nil {
			log.Printf("assessment reminders: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunGoalReminders notifies users about incomplete goals whose end date is
// today, unless they opted out of goal reminders.
func (s *Scheduler) RunGoalReminders() error {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var goals []models.Goal
	err := s.db.Where("is_completed = ? AND end_date >= ? AND end_date < ?",
		false, dayStart, dayEnd).Find(&goals).Error
	if err != nil {
		return err
	}

	for _, goal := range goals {
		var user models.User
		if err := s.db.First(&user, goal.UserID).Error; err != nil {
			continue
		}
		if !user.GoalReminders {
			continue
		}
		err := s.notifier.Notify(goal.UserID, "goal_reminder",
			"Goal Due Today",
			"Your goal \""+goal.Title+"\" is due today. Finish strong!",
			map[string]interface{}{"goalId": goal.ID.String(), "screen": "/goals"},
		)
		if err != nil {
			log.Printf("goal reminder for user %s: %v", goal.UserID, err)
		}
	}
	return nil
}

// RunAssessmentReminders nudges users who have never completed an assessment
// or whose latest one is more than three days old. At most one reminder is
// sent per 24 hours per user.
func (s *Scheduler) RunAssessmentReminders() error {
	now := s.now().UTC()
	staleCutoff := now.Add(-3 * 24 * time.Hour)
	resendCutoff := now.Add(-24 * time.Hour)

	var users []models.User
	err := s.db.Where("assessment_reminders = ?", true).
		Where(
			s.db.Where("has_completed_assessment = ?", false).
				Or("assessment_completed_at < ?", staleCutoff),
		).Find(&users).Error
	if err != nil {
		return err
	}

	for _, user := range users {
		if user.AssessmentReminderSentAt != nil && user.AssessmentReminderSentAt.After(resendCutoff) {
			continue
		}

		title := "Check In With Yourself"
		body := "It's been a while since your last self-assessment. Take a few minutes to see how you're doing."
		if !user.HasCompletedAssessment {
			title = "Start Your First Assessment"
			body = "Discover where you stand. Complete your first self-assessment to unlock your personal report."
		}

		err := s.notifier.Notify(user.ID, "assessment_reminder", title, body,
			map[string]interface{}{"screen": "/assessment"})
		if err != nil {
			log.Printf("assessment reminder for user %s: %v", user.ID, err)
			continue
		}

		s.db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("assessment_reminder_sent_at", now)
	}
	return nil
}
