package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loomline/internal/config"
	"loomline/internal/database"
	"loomline/internal/middleware"
	"loomline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	cfg := &config.Config{
		Port:            "8460",
		Env:             "test",
		FanoutTimeoutMS: 1000,
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

// createTestProfile registers a profile through the public endpoint and
// returns its decoded representation.
func createTestProfile(t *testing.T, app *fiber.App, username string) *models.Profile {
	t.Helper()

	body, err := json.Marshal(fiber.Map{
		"external_user_id": "0b8c6a1e-33f7-4bde-9f54-1c2d3e4f5a6b",
		"username":         username,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/profiles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	return &profile
}

// doJSON performs a request with an optional JSON body and caller identity.
func doJSON(t *testing.T, app *fiber.App, method, path string, actor *models.Profile, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set(middleware.ProfileIDHeader, actor.ID.String())
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
