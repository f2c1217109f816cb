package handlers

import (
	"errors"
	"time"

	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/report"
	"github.com/ascendapp/ascend-api/internal/scoring"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitAssessment validates raw answers, aggregates them, and persists one
// immutable snapshot together with the user's completion flag in a single
// transaction.
func (h *Handler) SubmitAssessment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil || len(req.Responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Responses are required",
		})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// Resolve submitted question ids against the catalog. Unparseable ids
	// are dropped, not rejected.
	questionIDs := make([]uuid.UUID, 0, len(req.Responses))
	for _, r := range req.Responses {
		if id, err := uuid.Parse(r.QuestionID); err == nil {
			questionIDs = append(questionIDs, id)
		}
	}
	if len(questionIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid question IDs provided",
		})
	}

	var questions []models.Question
	h.DB.Where("id IN ?", questionIDs).Find(&questions)
	if len(questions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No matching questions found for given IDs",
		})
	}

	questionByID := make(map[uuid.UUID]models.Question, len(questions))
	categorySet := map[string]bool{}
	for _, q := range questions {
		questionByID[q.ID] = q
		categorySet[q.Category] = true
	}

	// Fail closed on the whole batch if any referenced category is locked
	// for the user's subscription tier.
	categories := make([]string, 0, len(categorySet))
	for cat := range categorySet {
		categories = append(categories, cat)
	}
	if err := services.ValidateCategories(categories, user.SubscriptionType); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, services.ErrCategoryLocked) {
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	valid := make([]models.AssessmentResponse, 0, len(req.Responses))
	for _, raw := range req.Responses {
		id, err := uuid.Parse(raw.QuestionID)
		if err != nil {
			continue
		}
		question, ok := questionByID[id]
		if !ok {
			continue
		}

		score, ok := scoring.ParseScore(raw.SelectedOption)
		if !ok {
			continue
		}

		resp := models.AssessmentResponse{
			QuestionID: question.ID,
			Category:   question.Category,
			NeedKey:    question.NeedKey,
			NeedLabel:  question.NeedLabel,
			MainScore:  score,
		}

		// Sub-responses are optional, but a present-and-invalid one drops
		// the whole entry.
		if raw.QualityResponse != nil {
			quality, ok := scoring.ParseScore(raw.QualityResponse)
			if !ok {
				continue
			}
			resp.QualityScore = &quality
		}
		if raw.VolumeResponse != nil {
			volume, ok := scoring.ParseScore(raw.VolumeResponse)
			if !ok {
				continue
			}
			resp.VolumeScore = &volume
		}

		valid = append(valid, resp)
	}

	result, err := scoring.Aggregate(valid)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid responses",
		})
	}

	now := time.Now()
	assessment := models.Assessment{
		UserID:         userID,
		CompletedAt:    now,
		Responses:      valid,
		CategoryScores: result.CategoryScores,
		NeedScores:     result.NeedScores,
		OverallScore:   result.OverallScore,
	}

	// Snapshot and completion flag commit or roll back together.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assessment).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"has_completed_assessment": true,
			"assessment_completed_at":  now,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save assessment",
		})
	}

	return c.JSON(fiber.Map{
		"categoryScores":         result.CategoryScores,
		"needScores":             result.NeedScores,
		"overallScore":           result.OverallScore,
		"hasCompletedAssessment": true,
	})
}

// GetLatestReport returns the most recent snapshot with the static chart
// bands, lowest categories, and the pyramid structure.
func (h *Handler) GetLatestReport(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var latest models.Assessment
	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No assessment found for this user",
		})
	}

	pyramid := report.BuildPyramid(latest.NeedScores, h.Resolver, h.questionLookup())

	return c.JSON(fiber.Map{
		"assessmentId":     latest.ID,
		"categoryScores":   latest.CategoryScores,
		"needScores":       latest.NeedScores,
		"overallScore":     latest.OverallScore,
		"lowestCategories": report.LowestCategories(latest.CategoryScores, 2),
		"completedAt":      latest.CompletedAt,
		"chartMeta":        report.StaticChartMeta(),
		"responses":        latest.Responses,
		"pyramidStructure": fiber.Map{
			"needs":         report.PyramidNeeds,
			"needScores":    pyramid,
			"categoryOrder": models.CategoryOrder,
		},
	})
}

// learningSummary is the linked educational content for one low need.
type learningSummary struct {
	Title        string    `json:"title"`
	LearningType string    `json:"learningType"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	QuestionID   uuid.UUID `json:"questionId"`
	NeedLabel    string    `json:"needLabel"`
	Category     string    `json:"category"`
}

// GetNeedReport ranks needs ascending, surfaces the lowest three with any
// linked learning content, and emits the learn/goal/coach recommendations
// for the single lowest need.
func (h *Handler) GetNeedReport(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var latest models.Assessment
	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No assessment found for this user",
		})
	}

	ranked := report.RankNeeds(latest.NeedScores, h.questionLookup())

	lowest := ranked
	if len(lowest) > 3 {
		lowest = lowest[:3]
	}

	var primary *report.RankedNeed
	if len(ranked) > 0 {
		primary = &ranked[0]
	}

	// At most one piece of content per need; absence is an explicit null.
	learningByNeed := make(map[string]*learningSummary, len(lowest))
	for _, n := range lowest {
		learningByNeed[n.NeedKey] = nil
		if n.QuestionID == nil {
			continue
		}
		var learning models.QuestionLearning
		err := h.DB.Where("question_id = ? AND is_active = ?", *n.QuestionID, true).First(&learning).Error
		if err != nil {
			continue
		}
		learningByNeed[n.NeedKey] = &learningSummary{
			Title:        learning.Title,
			LearningType: learning.LearningType,
			ThumbnailURL: learning.ThumbnailURL,
			QuestionID:   learning.QuestionID,
			NeedLabel:    n.NeedLabel,
			Category:     n.Category,
		}
	}

	return c.JSON(fiber.Map{
		"assessmentId":    latest.ID,
		"needScores":      ranked,
		"categoryScores":  latest.CategoryScores,
		"lowestNeeds":     lowest,
		"learningByNeed":  learningByNeed,
		"recommendations": report.Recommendations(primary),
		"primaryNeed":     primary,
		"completedAt":     latest.CompletedAt,
	})
}
