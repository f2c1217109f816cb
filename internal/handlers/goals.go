package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func validLevel(level int) bool {
	return level >= 1 && level <= 7
}

// findNeed resolves a needKey inside a category to its active catalog entry.
func (h *Handler) findNeed(needKey, category string) (*models.Question, error) {
	var question models.Question
	err := h.DB.Where("need_key = ? AND category = ? AND is_active = ?",
		strings.TrimSpace(needKey), category, true).
		Order("need_order ASC, created_at ASC").
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (h *Handler) CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !models.IsValidCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal category. Allowed: " + strings.Join(models.CategoryOrder, ", "),
		})
	}

	if req.CurrentLevel == nil || req.TargetLevel == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "currentLevel and targetLevel are required (1-7)",
		})
	}
	if !validLevel(*req.CurrentLevel) || !validLevel(*req.TargetLevel) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "currentLevel and targetLevel must be between 1 and 7",
		})
	}
	if *req.TargetLevel < *req.CurrentLevel {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "targetLevel should be greater than or equal to currentLevel",
		})
	}

	if req.UserNotes != nil && len(*req.UserNotes) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userNotes must be 500 characters or less",
		})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err := services.ValidateCategories([]string{req.Category}, user.SubscriptionType); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, services.ErrCategoryLocked) {
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	goal := models.Goal{
		UserID:       userID,
		Category:     req.Category,
		CurrentLevel: *req.CurrentLevel,
		TargetLevel:  *req.TargetLevel,
		Description:  req.Description,
	}
	if req.UserNotes != nil {
		goal.UserNotes = strings.TrimSpace(*req.UserNotes)
	}

	title := ""
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}

	// A need anchor denormalizes the catalog metadata onto the goal and
	// backfills the title.
	if req.NeedKey != nil && *req.NeedKey != "" {
		question, err := h.findNeed(*req.NeedKey, req.Category)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Need \"" + *req.NeedKey + "\" not found in category \"" + req.Category + "\" or is inactive",
			})
		}
		goal.NeedKey = &question.NeedKey
		goal.NeedLabel = &question.NeedLabel
		order := question.NeedOrder
		goal.NeedOrder = &order
		qid := question.ID
		goal.QuestionID = &qid
		if title == "" {
			title = question.NeedLabel
		}
	}

	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required. Provide title or select a need.",
		})
	}
	goal.Title = title

	var err error
	if goal.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start date must be a valid date"})
	}
	if goal.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must be a valid date"})
	}
	if goal.StartDate != nil && goal.EndDate != nil && goal.EndDate.Before(*goal.StartDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "End date must be on or after the start date",
		})
	}

	if err := h.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *Handler) GetGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	query := h.DB.Where("user_id = ?", userID)
	switch c.Query("status") {
	case "":
	case "active":
		query = query.Where("is_completed = ?", false)
	case "completed":
		query = query.Where("is_completed = ?", true)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be either 'active' or 'completed'",
		})
	}

	var goals []models.Goal
	query.Order("created_at DESC").Find(&goals)

	return c.JSON(fiber.Map{
		"total": len(goals),
		"goals": goals,
	})
}

func (h *Handler) GetGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	return c.JSON(goal)
}

// UpdateGoal applies a partial update. The level invariant is re-validated
// against the merged state, and the false→true completion transition fires
// side effects exactly once.
func (h *Handler) UpdateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title cannot be empty",
			})
		}
		goal.Title = title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.UserNotes != nil {
		if len(*req.UserNotes) > 500 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "userNotes must be 500 characters or less",
			})
		}
		goal.UserNotes = strings.TrimSpace(*req.UserNotes)
	}

	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal category. Allowed: " + strings.Join(models.CategoryOrder, ", "),
			})
		}
		goal.Category = *req.Category
	}

	if req.CurrentLevel != nil {
		if !validLevel(*req.CurrentLevel) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "currentLevel must be a number between 1 and 7",
			})
		}
		goal.CurrentLevel = *req.CurrentLevel
	}
	if req.TargetLevel != nil {
		if !validLevel(*req.TargetLevel) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "targetLevel must be a number between 1 and 7",
			})
		}
		goal.TargetLevel = *req.TargetLevel
	}

	// Invariant holds on the merged state, not just the incoming fields.
	if goal.TargetLevel < goal.CurrentLevel {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "targetLevel should be greater than or equal to currentLevel",
		})
	}

	if req.NeedKey != nil {
		if *req.NeedKey == "" {
			goal.NeedKey = nil
			goal.NeedLabel = nil
			goal.NeedOrder = nil
			goal.QuestionID = nil
		} else {
			question, err := h.findNeed(*req.NeedKey, goal.Category)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Need \"" + *req.NeedKey + "\" not found in category \"" + goal.Category + "\" or is inactive",
				})
			}
			goal.NeedKey = &question.NeedKey
			goal.NeedLabel = &question.NeedLabel
			order := question.NeedOrder
			goal.NeedOrder = &order
			qid := question.ID
			goal.QuestionID = &qid
			if req.Title == nil {
				goal.Title = question.NeedLabel
			}
		}
	}

	if req.StartDate != nil || req.EndDate != nil {
		if req.StartDate != nil {
			if goal.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start date must be a valid date"})
			}
		}
		if req.EndDate != nil {
			if goal.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must be a valid date"})
			}
		}
		if goal.StartDate != nil && goal.EndDate != nil && goal.EndDate.Before(*goal.StartDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "End date must be on or after the start date",
			})
		}
	}

	wasCompleted := goal.IsCompleted
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
		if *req.IsCompleted && !wasCompleted {
			now := time.Now()
			goal.CompletedAt = &now
		}
		if !*req.IsCompleted && wasCompleted {
			goal.CompletedAt = nil
		}
	}
	completing := !wasCompleted && goal.IsCompleted

	if err := h.DB.Save(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	if completing {
		h.onGoalCompleted(userID, goal)
	}

	return c.JSON(goal)
}

// onGoalCompleted runs the completion side effects. The achievement
// recompute and notification are detached from the response via the task
// queue; their failures are logged, never surfaced.
func (h *Handler) onGoalCompleted(userID uuid.UUID, goal models.Goal) {
	h.Tasks.Enqueue("achievements.recalculate", func() error {
		_, err := h.Achievements.Recalculate(userID)
		return err
	})

	// One-time coaching offer once three goals are done.
	var completedCount int64
	h.DB.Model(&models.Goal{}).Where("user_id = ? AND is_completed = ?", userID, true).Count(&completedCount)
	if completedCount >= 3 {
		h.DB.Model(&models.User{}).
			Where("id = ? AND coaching_offer_eligible = ?", userID, false).
			Updates(map[string]interface{}{
				"coaching_offer_eligible":     true,
				"coaching_offer_triggered_at": time.Now(),
			})
	}

	title := goal.Title
	goalID := goal.ID.String()
	h.Tasks.Enqueue("notify.goal_completed", func() error {
		return h.Notifier.Notify(userID, "goal_completed",
			"Goal Completed!",
			"Congratulations! You've completed your goal: \""+title+"\"",
			map[string]interface{}{"goalId": goalID, "screen": "/goals"},
		)
	})
}

func (h *Handler) DeleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	result := h.DB.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}
