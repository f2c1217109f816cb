package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ascendapp/ascend-api/internal/database"
	"github.com/ascendapp/ascend-api/internal/middleware"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/ascendapp/ascend-api/internal/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	h     *Handler
	queue *tasks.Queue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	push := services.NewPushService(db, "")
	notifier := services.NewNotifier(db, push)
	queue := tasks.NewQueue(1, 0, 0)
	t.Cleanup(queue.Stop)

	h := New(db, notifier, queue)

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	protected := api.Group("/", middleware.Protected())
	protected.Get("/me", h.GetMe)
	protected.Put("/me", h.UpdateProfile)
	protected.Get("/questions", h.GetQuestions)

	assessments := protected.Group("/assessments")
	assessments.Post("/", h.SubmitAssessment)
	assessments.Get("/report", h.GetLatestReport)
	assessments.Get("/needs-report", h.GetNeedReport)

	goals := protected.Group("/goals")
	goals.Post("/", h.CreateGoal)
	goals.Get("/", h.GetGoals)
	goals.Get("/needs/:category", h.GetNeedsByCategory)
	goals.Get("/:id", h.GetGoal)
	goals.Put("/:id", h.UpdateGoal)
	goals.Delete("/:id", h.DeleteGoal)

	reflections := protected.Group("/reflections")
	reflections.Post("/", h.CreateReflection)
	reflections.Get("/", h.GetReflections)
	reflections.Put("/:id", h.UpdateReflection)

	protected.Get("/achievements", h.GetAchievements)
	protected.Get("/achievements/streak", h.GetFocusStreak)
	protected.Get("/subscription", h.GetSubscriptionInfo)

	return &testEnv{app: app, db: db, h: h, queue: queue}
}

// createUser inserts a user with the given subscription tier and returns it
// with a valid bearer token.
func (e *testEnv) createUser(t *testing.T, email, tier string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:            email,
		Password:         string(hashed),
		Name:             "Test User",
		SubscriptionType: tier,
	}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := middleware.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

// seedQuestion inserts one active catalog question.
func (e *testEnv) seedQuestion(t *testing.T, category, needKey, needLabel string, needOrder int) models.Question {
	t.Helper()

	q := models.Question{
		QuestionText:  "I am satisfied with my " + needLabel,
		Category:      category,
		NeedKey:       needKey,
		NeedLabel:     needLabel,
		NeedOrder:     needOrder,
		AnswerOptions: models.DefaultAnswerOptions,
		IsActive:      true,
	}
	require.NoError(t, e.db.Create(&q).Error)
	return q
}

// drainQueue waits until every previously enqueued task has run. Relies on
// the single-worker FIFO ordering of the test queue.
func (e *testEnv) drainQueue(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	e.queue.Enqueue("test.barrier", func() error {
		close(done)
		return nil
	})
	<-done
}

// request performs a JSON request against the test app and decodes the
// response body into a generic map.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func (e *testEnv) get(t *testing.T, path, token string) (int, map[string]interface{}) {
	return e.request(t, http.MethodGet, path, token, nil)
}
