package routes

import (
	"github.com/ascendapp/ascend-api/internal/handlers"
	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", h.GetMe)
	protected.Put("/me", h.UpdateProfile)

	// Assessment catalog and submissions
	protected.Get("/questions", h.GetQuestions)
	assessments := protected.Group("/assessments")
	assessments.Post("/", h.SubmitAssessment)
	assessments.Get("/report", h.GetLatestReport)
	assessments.Get("/needs-report", h.GetNeedReport)

	// Goals
	goals := protected.Group("/goals")
	goals.Post("/", h.CreateGoal)
	goals.Get("/", h.GetGoals)
	goals.Get("/needs/:category", h.GetNeedsByCategory)
	goals.Get("/:id", h.GetGoal)
	goals.Put("/:id", h.UpdateGoal)
	goals.Delete("/:id", h.DeleteGoal)

	// Reflections
	reflections := protected.Group("/reflections")
	reflections.Post("/", h.CreateReflection)
	reflections.Get("/", h.GetReflections)
	reflections.Get("/:id", h.GetReflection)
	reflections.Put("/:id", h.UpdateReflection)
	reflections.Delete("/:id", h.DeleteReflection)

	// Achievements
	protected.Get("/achievements", h.GetAchievements)
	protected.Get("/achievements/streak", h.GetFocusStreak)

	// Subscription
	protected.Get("/subscription", h.GetSubscriptionInfo)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", h.GetNotifications)
	notifications.Put("/:id/read", h.MarkNotificationRead)
	notifications.Post("/read-all", h.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", h.RegisterDeviceToken)
}
