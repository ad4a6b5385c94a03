package server

import (
	"net/http"
	"testing"

	"loomline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestFollowProfile(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	follow := decodeJSON[models.Follow](t, resp)
	assert.True(t, follow.IsApproved)

	resp = doJSON(t, app, http.MethodGet, "/api/profiles/bob", alice, nil)
	got := decodeJSON[models.Profile](t, resp)
	assert.Equal(t, 1, got.FollowerCount)
	assert.True(t, got.IsFollowing)
}

func TestFollowProfile_Self(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+alice.ID.String()+"/follow", alice, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowProfile_Duplicate(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnfollowProfile(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/profiles/"+bob.ID.String()+"/follow", alice, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/profiles/bob", alice, nil)
	got := decodeJSON[models.Profile](t, resp)
	assert.Equal(t, 0, got.FollowerCount)
	assert.False(t, got.IsFollowing)
}

func TestLikePost(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts/", bob, fiber.Map{"content": "hello"})
	post := decodeJSON[models.Post](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID.String()+"/like", alice, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/profiles/"+bob.ID.String()+"/posts", alice, nil)
	posts := decodeJSON[[]models.Post](t, resp)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].LikeCount)
	assert.True(t, posts[0].IsLiked)
}

func TestLikePost_Duplicate(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts/", bob, fiber.Map{"content": "hello"})
	post := decodeJSON[models.Post](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID.String()+"/like", alice, nil)
	_ = resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID.String()+"/like", alice, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnlikePost_NotLiked(t *testing.T) {
	_, app := newTestServer(t)
	alice := createTestProfile(t, app, "alice")
	bob := createTestProfile(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts/", bob, fiber.Map{"content": "hello"})
	post := decodeJSON[models.Post](t, resp)

	resp = doJSON(t, app, http.MethodDelete, "/api/posts/"+post.ID.String()+"/like", alice, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
