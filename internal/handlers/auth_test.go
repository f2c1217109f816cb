package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "new@test.com",
		"password": "secret123",
		"name":     "New User",
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "new@test.com", user["email"])
	assert.Equal(t, "Free", user["subscriptionType"])
	assert.Equal(t, false, user["hasCompletedAssessment"])
	// The hash never leaves the server.
	_, exposed := user["password"]
	assert.False(t, exposed)

	status, body = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "new@test.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "taken@test.com", "Free")

	status, _ := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "taken@test.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestRegisterShortPassword(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "short@test.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "wrong@test.com", "Free")

	status, _ := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "wrong@test.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.get(t, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.get(t, "/api/me", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "profile@test.com", "Free")

	status, body := env.request(t, http.MethodPut, "/api/me", token, map[string]interface{}{
		"name":          "Renamed",
		"age":           30,
		"goalReminders": false,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", body["name"])
	assert.Equal(t, float64(30), body["age"])
	assert.Equal(t, false, body["goalReminders"])
	// Untouched preference keeps its default.
	assert.Equal(t, true, body["assessmentReminders"])

	status, _ = env.request(t, http.MethodPut, "/api/me", token, map[string]interface{}{
		"age": 7,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetSubscriptionInfoEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "sub@test.com", "Coach")

	status, body := env.get(t, "/api/subscription", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Coach", body["subscriptionType"])
	assert.Equal(t, float64(39), body["pricing"])
	assert.Len(t, body["availableCategories"].([]interface{}), 5)
}
