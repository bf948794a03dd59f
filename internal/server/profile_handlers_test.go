package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProfile(t *testing.T, s *Server, token, handle string) map[string]any {
	t.Helper()

	resp, body := doRequest(t, s, http.MethodPost, "/api/profile/", map[string]string{
		"handle": handle,
		"status": "Developer",
		"skills": "Go, SQL, Docker",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body
}

func TestGetOwnProfile(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")

	t.Run("no profile yet", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodGet, "/api/profile/", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No profile found for the user", body["noProfile"])
	})

	t.Run("after creation", func(t *testing.T) {
		createProfile(t, s, token, "alice-dev")

		resp, body := doRequest(t, s, http.MethodGet, "/api/profile/", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice-dev", body["handle"])
		assert.Equal(t, "Developer", body["status"])
		assert.ElementsMatch(t, []any{"Go", "SQL", "Docker"}, body["skills"])

		// The owner is embedded with public fields only.
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Alice", user["name"])
		_, hasEmail := user["email"]
		assert.False(t, hasEmail)
	})
}

func TestUpsertProfileUpdatesInPlace(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	createProfile(t, s, token, "alice-dev")

	// A partial update keeps the fields it does not mention.
	resp, body := doRequest(t, s, http.MethodPost, "/api/profile/", map[string]string{
		"company": "Acme",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme", body["company"])
	assert.Equal(t, "alice-dev", body["handle"])
	assert.Equal(t, "Developer", body["status"])

	// Still exactly one profile for the user.
	resp, profiles := doRequestSlice(t, s, http.MethodGet, "/api/profile/all", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, profiles, 1)
}

func TestUpsertProfileStoreFailure(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	createProfile(t, s, token, "alice-dev")

	sqlDB, err := s.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// With the store down, an update must fail loudly instead of being
	// validated as a first-time create.
	resp, body := doRequest(t, s, http.MethodPost, "/api/profile/", map[string]string{
		"company": "Acme",
	}, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestUpsertProfileHandleConflict(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	bobToken, _ := registerAndLogin(t, s, "Bob", "bob@example.com")

	createProfile(t, s, aliceToken, "taken-handle")

	resp, body := doRequest(t, s, http.MethodPost, "/api/profile/", map[string]string{
		"handle": "taken-handle",
		"status": "Designer",
		"skills": "Figma",
	}, bobToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Handle already exists", body["handle"])

	// The loser's profile was not created.
	resp, body = doRequest(t, s, http.MethodGet, "/api/profile/", nil, bobToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No profile found for the user", body["noProfile"])
}

func TestGetProfileByHandleAndUser(t *testing.T) {
	s := newTestServer(t)
	token, userID := registerAndLogin(t, s, "Alice", "alice@example.com")
	createProfile(t, s, token, "alice-dev")

	resp, body := doRequest(t, s, http.MethodGet, "/api/profile/handle/alice-dev", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice-dev", body["handle"])

	resp, body = doRequest(t, s, http.MethodGet, "/api/profile/handle/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No profile found for the handle", body["noProfile"])

	resp, body = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/profile/user/%d", userID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice-dev", body["handle"])

	resp, body = doRequest(t, s, http.MethodGet, "/api/profile/user/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No profile found for the user id", body["noProfile"])
}

func TestExperienceLifecycle(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")

	exp := map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
		"current": true,
	}

	t.Run("requires a profile", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, "/api/profile/experience", exp, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "This user has no profile", body["profile"])
	})

	createProfile(t, s, token, "alice-dev")

	t.Run("add and list newest first", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodPost, "/api/profile/experience", exp, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doRequest(t, s, http.MethodPost, "/api/profile/experience", map[string]any{
			"title":   "Senior Engineer",
			"company": "Globex",
			"from":    "2022-01-01",
			"current": true,
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entries, ok := body["experience"].([]any)
		require.True(t, ok)
		require.Len(t, entries, 2)
		first := entries[0].(map[string]any)
		assert.Equal(t, "Senior Engineer", first["title"])
	})

	t.Run("delete one entry", func(t *testing.T) {
		_, body := doRequest(t, s, http.MethodGet, "/api/profile/", nil, token)
		entries := body["experience"].([]any)
		id := entries[0].(map[string]any)["id"].(float64)

		resp, body := doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/profile/experience/%d", int(id)), nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["experience"].([]any), 1)
	})

	t.Run("delete unknown entry", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodDelete, "/api/profile/experience/9999", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Entry not found", body["message"])
	})

	t.Run("current entry rejects end date", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodPost, "/api/profile/experience", map[string]any{
			"title":   "Engineer",
			"company": "Acme",
			"from":    "2020-01-01",
			"to":      "2021-01-01",
			"current": true,
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, body["to"])
	})
}

func TestEducationLifecycle(t *testing.T) {
	s := newTestServer(t)
	token, _ := registerAndLogin(t, s, "Alice", "alice@example.com")
	createProfile(t, s, token, "alice-dev")

	resp, body := doRequest(t, s, http.MethodPost, "/api/profile/education", map[string]any{
		"school":         "MIT",
		"degree":         "BSc",
		"field_of_study": "CS",
		"from":           "2016-09-01",
		"to":             "2020-06-01",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries, ok := body["education"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "MIT", entries[0].(map[string]any)["school"])

	id := entries[0].(map[string]any)["id"].(float64)
	resp, body = doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/profile/education/%d", int(id)), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["education"])
}

func TestDeleteAccountCascades(t *testing.T) {
	s := newTestServer(t)
	token, userID := registerAndLogin(t, s, "Alice", "alice@example.com")
	createProfile(t, s, token, "alice-dev")

	resp, _ := doRequest(t, s, http.MethodPost, "/api/posts/", map[string]string{
		"text": "A farewell post before leaving",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, s, http.MethodDelete, "/api/profile/", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User and Profile deleted", body["message"])

	// Profile, posts, and credentials are all gone.
	resp, _ = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/profile/user/%d", userID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, posts := doRequestSlice(t, s, http.MethodGet, "/api/posts/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, posts)

	resp, _ = doRequest(t, s, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
