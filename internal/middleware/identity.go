package middleware

import (
	"strings"

	"loomline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProfileIDHeader names the header carrying the caller's profile identity.
// Authentication happens upstream; by the time a request reaches this service
// the gateway has already resolved the session to a profile ID.
const ProfileIDHeader = "X-Profile-ID"

// IdentityRequired returns middleware that rejects requests without a valid
// profile ID header and stores the parsed ID in c.Locals("profileID").
func IdentityRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(ProfileIDHeader))
		if raw == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Missing "+ProfileIDHeader+" header"))
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid "+ProfileIDHeader+" header"))
		}

		c.Locals("profileID", id)
		return c.Next()
	}
}
