package handlers

import (
	"time"

	"github.com/ascendapp/ascend-api/internal/achievements"
	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// GetAchievements recomputes the whole achievement record from activity
// history and returns it with badge progress toward the next tier.
func (h *Handler) GetAchievements(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	achievement, err := h.Achievements.Recalculate(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to calculate achievements",
		})
	}

	return c.JSON(fiber.Map{
		"totalPoints":          achievement.TotalPoints,
		"currentBadgeLevel":    achievement.CurrentBadgeLevel,
		"currentBadgeName":     achievement.CurrentBadgeName,
		"badgeProgress":        achievements.NextBadgeProgress(achievement.TotalPoints),
		"focusStreak":          achievement.FocusStreak,
		"lastActivityDate":     achievement.LastActivityDate,
		"unlockedAchievements": achievement.UnlockedAchievements,
		"activityCounts":       achievement.ActivityCounts,
	})
}

func (h *Handler) GetFocusStreak(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	achievement, err := h.Achievements.Recalculate(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to calculate focus streak",
		})
	}

	activeToday := false
	if achievement.LastActivityDate != nil {
		activeToday = achievements.DateOnly(*achievement.LastActivityDate).Equal(achievements.DateOnly(time.Now()))
	}

	return c.JSON(fiber.Map{
		"focusStreak":      achievement.FocusStreak,
		"activeToday":      activeToday,
		"lastActivityDate": achievement.LastActivityDate,
		"streakBadges":     achievement.UnlockedAchievements,
	})
}
