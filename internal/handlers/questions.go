package handlers

import (
	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetQuestions returns the active assessment catalog in presentation order.
// Categories the user's subscription does not cover are still listed so the
// client can render them as locked.
func (h *Handler) GetQuestions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var questions []models.Question
	h.DB.Where("is_active = ?", true).
		Order("section_order ASC, need_order ASC, created_at ASC").
		Find(&questions)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"total":               len(questions),
		"questions":           questions,
		"availableCategories": services.AvailableCategories(user.SubscriptionType),
	})
}

// GetNeedsByCategory lists the distinct needs of one category for the goal
// creation dropdown. Duplicate needKeys keep the first row in catalog order.
func (h *Handler) GetNeedsByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	if !models.IsValidCategory(category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category",
		})
	}

	var questions []models.Question
	h.DB.Where("category = ? AND is_active = ?", category, true).
		Order("need_order ASC, need_label ASC").
		Find(&questions)

	seen := make(map[string]bool)
	needs := make([]models.NeedOption, 0, len(questions))
	for _, q := range questions {
		if q.NeedKey == "" || seen[q.NeedKey] {
			continue
		}
		seen[q.NeedKey] = true
		needs = append(needs, models.NeedOption{
			NeedKey:    q.NeedKey,
			NeedLabel:  q.NeedLabel,
			NeedOrder:  q.NeedOrder,
			Category:   q.Category,
			QuestionID: q.ID,
		})
	}

	return c.JSON(fiber.Map{
		"category": category,
		"needs":    needs,
	})
}

func (h *Handler) GetSubscriptionInfo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(services.GetSubscriptionInfo(user.SubscriptionType))
}
