package service

import (
	"context"
	"testing"

	"loomline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CreateProfile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	profile, err := e.profiles.CreateProfile(ctx, CreateProfileInput{
		ExternalUserID: uuid.New(),
		Username:       "  Ada_99  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada_99", profile.Username)
	assert.Equal(t, "ada_99", profile.DisplayName)

	_, err = e.profiles.CreateProfile(ctx, CreateProfileInput{
		ExternalUserID: uuid.New(),
		Username:       "ada_99",
	})
	assert.True(t, models.IsConflict(err))

	tests := []string{"ab", "has space", "UPPER!", ""}
	for _, username := range tests {
		_, err := e.profiles.CreateProfile(ctx, CreateProfileInput{
			ExternalUserID: uuid.New(),
			Username:       username,
		})
		assert.Truef(t, models.IsValidation(err), "username %q should be rejected", username)
	}
}

func TestProfileService_GetProfileByIDOrUsername(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	_, err := e.graph.Follow(ctx, ada.ID, bob.ID)
	require.NoError(t, err)

	byID, err := e.profiles.GetProfile(ctx, ada.ID, bob.ID.String())
	require.NoError(t, err)
	assert.True(t, byID.IsFollowing)
	assert.False(t, byID.IsFollowedBy)

	byName, err := e.profiles.GetProfile(ctx, bob.ID, "ada")
	require.NoError(t, err)
	assert.False(t, byName.IsFollowing)
	assert.True(t, byName.IsFollowedBy)

	_, err = e.profiles.GetProfile(ctx, ada.ID, "ghost")
	assert.True(t, models.IsNotFound(err))
}

func TestProfileService_UpdateProfile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)

	bio := "hello"
	private := true
	updated, err := e.profiles.UpdateProfile(ctx, UpdateProfileInput{
		ProfileID: ada.ID,
		Bio:       &bio,
		IsPrivate: &private,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "ada", updated.DisplayName)
}

func TestProfileService_DeleteProfile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	require.NoError(t, e.profiles.DeleteProfile(ctx, ada.ID))

	_, err := e.profiles.GetProfile(ctx, uuid.Nil, "ada")
	assert.True(t, models.IsNotFound(err))
}
