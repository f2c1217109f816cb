package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ascendapp/ascend-api/internal/config"
	"github.com/ascendapp/ascend-api/internal/database"
	"github.com/ascendapp/ascend-api/internal/handlers"
	"github.com/ascendapp/ascend-api/internal/jobs"
	"github.com/ascendapp/ascend-api/internal/routes"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/ascendapp/ascend-api/internal/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedQuestions(db); err != nil {
		log.Fatalf("Failed to seed question catalog: %v", err)
	}

	push := services.NewPushService(db, cfg.FCMServiceAccount)
	notifier := services.NewNotifier(db, push)

	queue := tasks.NewQueue(4, 2, time.Second)
	defer queue.Stop()

	h := handlers.New(db, notifier, queue)

	scheduler := jobs.NewScheduler(db, notifier)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName: "Ascend API",
	})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.Setup(app, h)

	// Graceful shutdown so the task queue drains before exit.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
