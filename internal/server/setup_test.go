package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devconnect/internal/config"
	"devconnect/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-for-handler-tests-only!",
		TokenTTLSeconds: 3600,
		Port:            "8080",
		Env:             "test",
		AllowedOrigins:  "*",
	}
}

// newTestServer builds a server over a fresh in-memory database, named after
// the test so parallel tests never share state.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	s := NewServerWithDeps(testConfig(), db)
	s.SetupRoutes()
	return s
}

// doRequest performs a request against the test server and decodes the JSON
// response body into a generic map.
func doRequest(t *testing.T, s *Server, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// doRequestSlice is doRequest for endpoints returning a JSON array.
func doRequestSlice(t *testing.T, s *Server, method, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// registerAndLogin creates a user and returns its bearer token (including the
// "Bearer " prefix) and user id.
func registerAndLogin(t *testing.T, s *Server, name, email string) (token string, userID uint) {
	t.Helper()

	resp, _ := doRequest(t, s, http.MethodPost, "/api/users/register", map[string]string{
		"name":      name,
		"email":     email,
		"password":  "secret1",
		"password2": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, s, http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doRequest(t, s, http.MethodGet, "/api/users/current", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, ok := body["id"].(float64)
	require.True(t, ok)

	return token, uint(id)
}
