package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/ratelimit"
)

func TestRegister(t *testing.T) {
	server := setupTestServer(t)

	t.Run("creates an account and logs it in", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":        "new@example.com",
			"password":     "a long enough password",
			"display_name": "New Reader",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody[map[string]any](t, w)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])
		assert.Equal(t, "Bearer", body["token_type"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "new@example.com", user["email"])
		assert.Equal(t, "New Reader", user["display_name"])
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("duplicate email", func(t *testing.T) {
		payload := map[string]any{"email": "dup@example.com", "password": "a long enough password"}
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", payload)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[map[string][]string](t, w)
		assert.Equal(t, []string{"A user with this email already exists."}, body["email"])
	})

	t.Run("short password", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":    "short@example.com",
			"password": "short",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[map[string][]string](t, w)
		require.Len(t, body["password"], 1)
	})

	t.Run("invalid email", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":    "not-an-email",
			"password": "a long enough password",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[map[string][]string](t, w)
		assert.Equal(t, []string{"Enter a valid email address."}, body["email"])
	})
}

func TestLogin(t *testing.T) {
	server := setupTestServer(t)
	createTestUser(t, server, "reader@example.com", false)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "reader@example.com",
			"password": "correct horse battery staple",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.NotEmpty(t, body["access_token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "reader@example.com",
			"password": "wrong password entirely",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "ghost@example.com",
			"password": "correct horse battery staple",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogin_RateLimited(t *testing.T) {
	server := setupTestServer(t)
	// Replace the generous test limiter with a tight one.
	server.loginLimiter = ratelimit.New(1, 2)

	payload := map[string]any{"email": "reader@example.com", "password": "whatever password"}

	var last int
	for range 5 {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", payload)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRefreshAndLogout(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "reader@example.com",
		"password": "a long enough password",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	registered := decodeBody[map[string]any](t, w)
	refreshToken := registered["refresh_token"].(string)

	t.Run("refresh rotates tokens", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
			"refresh_token": refreshToken,
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		newToken := body["refresh_token"].(string)
		assert.NotEqual(t, refreshToken, newToken)

		// The old token stopped working.
		w = doJSON(t, server, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
			"refresh_token": refreshToken,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		refreshToken = newToken
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/logout", "", map[string]any{
			"refresh_token": refreshToken,
		})
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, server, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
			"refresh_token": refreshToken,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout is idempotent", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/logout", "", map[string]any{
			"refresh_token": refreshToken,
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
