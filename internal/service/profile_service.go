package service

import (
	"context"
	"regexp"
	"strings"

	"loomline/internal/models"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// ProfileService owns profile lifecycles and single-profile reads.
type ProfileService struct {
	store repository.Store
}

// NewProfileService creates a ProfileService.
func NewProfileService(store repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

// CreateProfileInput carries the payload for CreateProfile.
type CreateProfileInput struct {
	ExternalUserID uuid.UUID
	Username       string
	DisplayName    string
	Bio            string
	AvatarURL      string
	IsPrivate      bool
}

// CreateProfile registers a new profile. Usernames are case-folded and must
// be unique; a duplicate is a conflict.
func (s *ProfileService) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.Profile, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if !usernamePattern.MatchString(username) {
		return nil, models.NewValidationError("Username must be 3-50 characters of lowercase letters, digits, or underscores")
	}

	profile := &models.Profile{
		ExternalUserID: in.ExternalUserID,
		Username:       username,
		DisplayName:    in.DisplayName,
		Bio:            in.Bio,
		AvatarURL:      in.AvatarURL,
		IsPrivate:      in.IsPrivate,
	}
	if profile.DisplayName == "" {
		profile.DisplayName = username
	}
	if err := s.store.Profiles().Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile resolves a profile by ID or username and annotates the
// follow relationship relative to the viewer.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID uuid.UUID, idOrUsername string) (*models.Profile, error) {
	var profile *models.Profile
	var err error

	if id, parseErr := uuid.Parse(idOrUsername); parseErr == nil {
		profile, err = s.store.Profiles().GetByID(ctx, id)
	} else {
		profile, err = s.store.Profiles().GetByUsername(ctx, strings.ToLower(idOrUsername))
	}
	if err != nil {
		return nil, err
	}

	if viewerID != uuid.Nil && viewerID != profile.ID {
		following, err := s.store.Follows().FollowingOf(ctx, viewerID, []uuid.UUID{profile.ID})
		if err != nil {
			return nil, err
		}
		followers, err := s.store.Follows().FollowersOf(ctx, viewerID, []uuid.UUID{profile.ID})
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = following[profile.ID]
		profile.IsFollowedBy = followers[profile.ID]
	}

	return profile, nil
}

// UpdateProfileInput carries mutable profile fields; nil means unchanged.
type UpdateProfileInput struct {
	ProfileID   uuid.UUID
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	IsPrivate   *bool
}

// UpdateProfile applies partial updates to a profile's mutable fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.store.Profiles().GetByID(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		profile.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}
	if in.IsPrivate != nil {
		profile.IsPrivate = *in.IsPrivate
	}
	if err := s.store.Profiles().Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile soft-deletes a profile. Edges and content remain for audit;
// soft-deleted profiles drop out of every read path.
func (s *ProfileService) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	return s.store.Profiles().Delete(ctx, profileID)
}
