package handlers

import (
	"strings"
	"time"

	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) CreateReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !models.IsValidMood(req.Mood) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Mood must be one of: " + strings.Join(models.ValidMoods, ", "),
		})
	}

	reflection := models.Reflection{
		UserID: userID,
		Mood:   req.Mood,
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if len(note) > 300 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Note must be 300 characters or less",
			})
		}
		if note != "" {
			reflection.Note = &note
		}
	}

	if req.Date != nil && *req.Date != "" {
		date, err := parseOptionalDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Date must be a valid date",
			})
		}
		reflection.Date = *date
	}

	if req.QuestionID != nil && *req.QuestionID != "" {
		questionID, err := uuid.Parse(*req.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid question ID",
			})
		}
		var question models.Question
		if err := h.DB.First(&question, questionID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		reflection.QuestionID = &questionID
	}

	if err := h.DB.Create(&reflection).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create reflection",
		})
	}

	h.Tasks.Enqueue("achievements.recalculate", func() error {
		_, err := h.Achievements.Recalculate(userID)
		return err
	})

	return c.Status(fiber.StatusCreated).JSON(reflection)
}

func (h *Handler) GetReflections(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	query := h.DB.Where("user_id = ?", userID)

	if start := c.Query("startDate"); start != "" {
		startDate, err := parseOptionalDate(&start)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "startDate must be a valid date",
			})
		}
		query = query.Where("date >= ?", *startDate)
	}
	if end := c.Query("endDate"); end != "" {
		endDate, err := parseOptionalDate(&end)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "endDate must be a valid date",
			})
		}
		// Inclusive end of day for date-only values.
		query = query.Where("date < ?", endDate.Add(24*time.Hour))
	}

	var reflections []models.Reflection
	query.Order("date DESC").Find(&reflections)

	return c.JSON(fiber.Map{
		"total":       len(reflections),
		"reflections": reflections,
	})
}

func (h *Handler) GetReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	reflectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reflection ID",
		})
	}

	var reflection models.Reflection
	if err := h.DB.Where("id = ? AND user_id = ?", reflectionID, userID).First(&reflection).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reflection not found",
		})
	}

	return c.JSON(reflection)
}

func (h *Handler) UpdateReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	reflectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reflection ID",
		})
	}

	var reflection models.Reflection
	if err := h.DB.Where("id = ? AND user_id = ?", reflectionID, userID).First(&reflection).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reflection not found",
		})
	}

	var req models.UpdateReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Mood != nil {
		if !models.IsValidMood(*req.Mood) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Mood must be one of: " + strings.Join(models.ValidMoods, ", "),
			})
		}
		reflection.Mood = *req.Mood
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if len(note) > 300 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Note must be 300 characters or less",
			})
		}
		if note == "" {
			reflection.Note = nil
		} else {
			reflection.Note = &note
		}
	}

	if req.Date != nil && *req.Date != "" {
		date, err := parseOptionalDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Date must be a valid date",
			})
		}
		reflection.Date = *date
	}

	if req.QuestionID != nil {
		if *req.QuestionID == "" {
			reflection.QuestionID = nil
		} else {
			questionID, err := uuid.Parse(*req.QuestionID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid question ID",
				})
			}
			var question models.Question
			if err := h.DB.First(&question, questionID).Error; err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Question not found",
				})
			}
			reflection.QuestionID = &questionID
		}
	}

	if err := h.DB.Save(&reflection).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update reflection",
		})
	}

	return c.JSON(reflection)
}

func (h *Handler) DeleteReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	reflectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reflection ID",
		})
	}

	result := h.DB.Where("id = ? AND user_id = ?", reflectionID, userID).Delete(&models.Reflection{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reflection not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
