package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessCheck(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadinessCheck(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	checks := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "healthy", checks["status"])
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInvalidIdentityHeaderRejected(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("X-Profile-ID", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
