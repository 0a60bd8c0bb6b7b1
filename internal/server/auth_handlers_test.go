package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "newwriter",
		"email":    "newwriter@example.com",
		"password": "Sup3rSecretPw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created struct {
		Token string          `json:"token"`
		User  ProfileResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "newwriter", created.User.Username)
	// Registration never grants staff.
	assert.False(t, created.User.IsStaff)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "newwriter@example.com",
		"password": "Sup3rSecretPw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var logged struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &logged))

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/profile", logged.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "newwriter@example.com", profile.Email)
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "short password", payload: map[string]any{"username": "ok", "email": "x@example.com", "password": "short"}},
		{name: "bad email", payload: map[string]any{"username": "okname", "email": "not-an-email", "password": "Sup3rSecretPw"}},
		{name: "bad username", payload: map[string]any{"username": "a b c", "email": "x@example.com", "password": "Sup3rSecretPw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, s, db := newTestServer(t)
	createTestUser(t, s, db, "existing", false)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "someoneelse",
		"email":    "existing@example.com",
		"password": "Sup3rSecretPw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app, s, db := newTestServer(t)
	createTestUser(t, s, db, "victim", false)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "victim@example.com",
		"password": "WrongPassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	app, s, db := newTestServer(t)
	_, token := createTestUser(t, s, db, "leaver", false)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token no longer authenticates.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRejectsGarbageTokens(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/auth/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
