package server

import (
	"loomline/internal/models"
	"loomline/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateProfile handles POST /api/profiles
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	var req struct {
		ExternalUserID string `json:"external_user_id"`
		Username       string `json:"username"`
		DisplayName    string `json:"display_name"`
		Bio            string `json:"bio"`
		AvatarURL      string `json:"avatar_url"`
		IsPrivate      bool   `json:"is_private"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	externalID, err := uuid.Parse(req.ExternalUserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid external_user_id"))
	}

	profile, err := s.profileService.CreateProfile(c.UserContext(), service.CreateProfileInput{
		ExternalUserID: externalID,
		Username:       req.Username,
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		AvatarURL:      req.AvatarURL,
		IsPrivate:      req.IsPrivate,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	viewer := actorID(c)

	profile, err := s.profileService.GetProfile(c.UserContext(), viewer, viewer.String())
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(profile)
}

// GetProfile handles GET /api/profiles/:id where :id is a profile ID or username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), actorID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		AvatarURL   *string `json:"avatar_url"`
		IsPrivate   *bool   `json:"is_private"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ProfileID:   actorID(c),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(profile)
}

// DeleteMyProfile handles DELETE /api/profiles/me
func (s *Server) DeleteMyProfile(c *fiber.Ctx) error {
	if err := s.profileService.DeleteProfile(c.UserContext(), actorID(c)); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Profile deleted"})
}
