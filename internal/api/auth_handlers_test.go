package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
)

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	ts := setupTestServer(t)

	_, first := ts.registerUser(t, "ada@example.com", "Ada")
	assert.Equal(t, domain.RoleAdmin, first.Role)

	_, second := ts.registerUser(t, "grace@example.com", "Grace")
	assert.Equal(t, domain.RoleUser, second.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada@example.com", "Ada")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
		"name":     "Ada Again",
	})
	require.Equal(t, http.StatusConflict, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Code)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada@example.com", "Ada")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada@example.com", "Ada")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "ada@example.com", "Ada")

	resp := ts.api.Get("/api/v1/users/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.User]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "ada@example.com", envelope.Data.Email)

	// Anonymous callers get a 401.
	resp = ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)

	registerResp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
		"name":     "Ada",
	})
	require.Equal(t, http.StatusOK, registerResp.Code)

	var registered testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(registerResp.Body.Bytes(), &registered))
	oldRefresh := registered.Data.RefreshToken

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": oldRefresh,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var refreshed testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &refreshed))
	assert.NotEqual(t, oldRefresh, refreshed.Data.RefreshToken)
	assert.Equal(t, registered.Data.SessionID, refreshed.Data.SessionID)

	// The old refresh token was invalidated by the rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": oldRefresh,
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "TOKEN_EXPIRED", envelope.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := setupTestServer(t)

	registerResp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
		"name":     "Ada",
	})
	require.Equal(t, http.StatusOK, registerResp.Code)

	var registered testEnvelope[service.AuthResponse]
	require.NoError(t, json.Unmarshal(registerResp.Body.Bytes(), &registered))

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": registered.Data.SessionID,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Refreshing against the revoked session fails.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": registered.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListMySessions(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "ada@example.com", "Ada")

	// A second login opens a second session.
	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/users/me/sessions", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SessionsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Sessions, 2)
}
