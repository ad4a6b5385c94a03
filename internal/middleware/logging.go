// Package middleware provides identity, logging, metrics, and rate limiting
// middleware for the HTTP surface.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"loomline/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	ProfileIDKey contextKey = "profile_id"
)

// ContextMiddleware injects the request ID and resolved profile ID from Fiber
// locals into the request context so deeper layers can log them.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid := c.Locals("requestid"); rid != nil {
			if ridStr, ok := rid.(string); ok {
				ctx = context.WithValue(ctx, RequestIDKey, ridStr)
			}
		}

		if pid := c.Locals("profileID"); pid != nil {
			if pidUUID, ok := pid.(uuid.UUID); ok {
				ctx = context.WithValue(ctx, ProfileIDKey, pidUUID.String())
			}
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger returns a Fiber middleware that logs each request with slog.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", latency),
		}
		if rid, ok := c.UserContext().Value(RequestIDKey).(string); ok {
			fields = append(fields, slog.String("request_id", rid))
		}
		if pid, ok := c.UserContext().Value(ProfileIDKey).(string); ok {
			fields = append(fields, slog.String("profile_id", pid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			observability.Logger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			observability.Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
