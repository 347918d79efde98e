package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// RequireAdmin rejects callers without administrative capability.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := CallerFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if !caller.IsAdmin() {
			return apperrors.NewForbiddenTransition("administrative capability required")
		}
		return c.Next()
	}
}
