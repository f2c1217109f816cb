package handlers

import (
	"net/http"
	"testing"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoalLevelValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "levels@test.com", "Free")

	// target below current
	status, body := env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":        "Sleep better",
		"category":     models.CategorySurvival,
		"currentLevel": 5,
		"targetLevel":  3,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "targetLevel")

	// out of range
	status, _ = env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":        "Sleep better",
		"category":     models.CategorySurvival,
		"currentLevel": 0,
		"targetLevel":  7,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// missing levels
	status, _ = env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":    "Sleep better",
		"category": models.CategorySurvival,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// equal levels are fine
	status, _ = env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":        "Hold steady",
		"category":     models.CategorySurvival,
		"currentLevel": 4,
		"targetLevel":  4,
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestCreateGoalInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "cat@test.com", "Free")

	status, _ := env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":        "x",
		"category":     "Spiritual",
		"currentLevel": 1,
		"targetLevel":  7,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateGoalLockedCategory(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "locked@test.com", "Free")

	status, _ := env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"title":        "Make friends",
		"category":     models.CategorySocial,
		"currentLevel": 2,
		"targetLevel":  5,
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCreateGoalFromNeed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "need@test.com", "Free")
	q := env.seedQuestion(t, models.CategorySurvival, "sleep", "Sleep", 1)

	// No title: the need label backfills it, metadata is denormalized.
	status, body := env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"category":     models.CategorySurvival,
		"needKey":      "sleep",
		"currentLevel": 2,
		"targetLevel":  6,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Sleep", body["title"])
	assert.Equal(t, "sleep", body["needKey"])
	assert.Equal(t, q.ID.String(), body["questionId"])

	// Unknown need in the category is rejected.
	status, _ = env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"category":     models.CategorySurvival,
		"needKey":      "meditation",
		"currentLevel": 1,
		"targetLevel":  7,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateGoalRequiresTitleOrNeed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "notitle@test.com", "Free")

	status, _ := env.request(t, http.MethodPost, "/api/goals/", token, map[string]interface{}{
		"category":     models.CategorySurvival,
		"currentLevel": 1,
		"targetLevel":  7,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateGoalMergedLevelValidation(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "merge@test.com", "Free")

	goal := models.Goal{
		UserID: user.ID, Title: "Exercise", Category: models.CategorySurvival,
		CurrentLevel: 6, TargetLevel: 7,
	}
	require.NoError(t, env.db.Create(&goal).Error)

	// New target conflicts with the stored current level.
	status, _ := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"targetLevel": 2,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Lowering both together is valid.
	status, body := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"currentLevel": 1,
		"targetLevel":  2,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["currentLevel"])
	assert.Equal(t, float64(2), body["targetLevel"])
}

func TestUpdateGoalCompletionSideEffects(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "complete@test.com", "Free")

	goal := models.Goal{
		UserID: user.ID, Title: "Exercise daily", Category: models.CategorySurvival,
		CurrentLevel: 2, TargetLevel: 5,
	}
	require.NoError(t, env.db.Create(&goal).Error)

	status, body := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["isCompleted"])
	assert.NotNil(t, body["completedAt"])

	env.drainQueue(t)

	var achievement models.Achievement
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&achievement).Error)
	assert.Equal(t, 1, achievement.ActivityCounts.GoalsCompleted)

	var notifCount int64
	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, "goal_completed").Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)

	// Re-sending isCompleted=true is not a transition: no second notification.
	status, _ = env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, status)
	env.drainQueue(t)

	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, "goal_completed").Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)
}

func TestUpdateGoalUncompleteClearsCompletedAt(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "uncomplete@test.com", "Free")

	goal := models.Goal{
		UserID: user.ID, Title: "Read", Category: models.CategorySurvival,
		CurrentLevel: 1, TargetLevel: 3,
	}
	require.NoError(t, env.db.Create(&goal).Error)

	status, _ := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"isCompleted": false,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["isCompleted"])
	assert.Nil(t, body["completedAt"])
}

func TestCoachingOfferAtThreeCompletedGoals(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "coaching@test.com", "Free")

	for i, title := range []string{"One", "Two", "Three"} {
		goal := models.Goal{
			UserID: user.ID, Title: title, Category: models.CategorySurvival,
			CurrentLevel: 1, TargetLevel: 2,
		}
		require.NoError(t, env.db.Create(&goal).Error)

		status, _ := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
			"isCompleted": true,
		})
		require.Equal(t, http.StatusOK, status)
		env.drainQueue(t)

		var u models.User
		require.NoError(t, env.db.First(&u, user.ID).Error)
		if i < 2 {
			assert.False(t, u.CoachingOfferEligible, "after %d completions", i+1)
		} else {
			assert.True(t, u.CoachingOfferEligible)
			require.NotNil(t, u.CoachingOfferTriggeredAt)
		}
	}

	// The trigger timestamp is one-time: a fourth completion leaves it alone.
	var before models.User
	require.NoError(t, env.db.First(&before, user.ID).Error)

	goal := models.Goal{
		UserID: user.ID, Title: "Four", Category: models.CategorySurvival,
		CurrentLevel: 1, TargetLevel: 2,
	}
	require.NoError(t, env.db.Create(&goal).Error)
	status, _ := env.request(t, http.MethodPut, "/api/goals/"+goal.ID.String(), token, map[string]interface{}{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, status)
	env.drainQueue(t)

	var after models.User
	require.NoError(t, env.db.First(&after, user.ID).Error)
	assert.Equal(t, before.CoachingOfferTriggeredAt.Unix(), after.CoachingOfferTriggeredAt.Unix())
}

func TestGetGoalsStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "filter@test.com", "Free")

	for _, g := range []models.Goal{
		{UserID: user.ID, Title: "Active", Category: models.CategorySurvival, CurrentLevel: 1, TargetLevel: 3},
		{UserID: user.ID, Title: "Done", Category: models.CategorySurvival, CurrentLevel: 1, TargetLevel: 3, IsCompleted: true},
	} {
		goal := g
		require.NoError(t, env.db.Create(&goal).Error)
	}

	status, body := env.get(t, "/api/goals/?status=active", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, body = env.get(t, "/api/goals/?status=completed", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, body = env.get(t, "/api/goals/", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])

	status, _ = env.get(t, "/api/goals/?status=bogus", token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGoalOwnershipAndDeletion(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser(t, "owner@test.com", "Free")
	_, otherToken := env.createUser(t, "other@test.com", "Free")

	goal := models.Goal{
		UserID: owner.ID, Title: "Private", Category: models.CategorySurvival,
		CurrentLevel: 1, TargetLevel: 3,
	}
	require.NoError(t, env.db.Create(&goal).Error)

	// Another user cannot see or delete it.
	status, _ := env.get(t, "/api/goals/"+goal.ID.String(), otherToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.request(t, http.MethodDelete, "/api/goals/"+goal.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetNeedsByCategory(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "needs@test.com", "Free")

	env.seedQuestion(t, models.CategorySurvival, "sleep", "Sleep", 2)
	env.seedQuestion(t, models.CategorySurvival, "nutrition", "Nutrition", 1)
	env.seedQuestion(t, models.CategorySafety, "housing", "Housing", 1)

	status, body := env.get(t, "/api/goals/needs/Survival", token)
	require.Equal(t, http.StatusOK, status)

	needs := body["needs"].([]interface{})
	require.Len(t, needs, 2)
	first := needs[0].(map[string]interface{})
	assert.Equal(t, "nutrition", first["needKey"])

	status, _ = env.get(t, "/api/goals/needs/Bogus", token)
	assert.Equal(t, http.StatusBadRequest, status)
}
