package server

import (
	"net/http"
	"testing"

	"loomline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notifs := decodeJSON[[]models.Notification](t, resp)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationFollow, notifs[0].Type)

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bob, nil)
	count := decodeJSON[map[string]int64](t, resp)
	assert.Equal(t, int64(1), count["count"])

	resp = doJSON(t, app, http.MethodPost, "/api/notifications/read", bob, map[string][]string{
		"ids": {notifs[0].ID.String()},
	})
	updated := decodeJSON[map[string]int64](t, resp)
	assert.Equal(t, int64(1), updated["updated"])

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bob, nil)
	count = decodeJSON[map[string]int64](t, resp)
	assert.Equal(t, int64(0), count["count"])
}

func TestNotifications_RecipientIsolation(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/", alice, nil)
	notifs := decodeJSON[[]models.Notification](t, resp)
	assert.Empty(t, notifs)
}

func TestDeleteNotification_WrongRecipient(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/", bob, nil)
	notifs := decodeJSON[[]models.Notification](t, resp)
	require.Len(t, notifs, 1)

	resp = doJSON(t, app, http.MethodDelete, "/api/notifications/"+notifs[0].ID.String(), alice, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
