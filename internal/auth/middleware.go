package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/identity"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

const callerKey = "auth_caller"

// Middleware resolves the caller behind each request from its bearer
// token and stashes it in the request context.
type Middleware struct {
	provider identity.Provider
}

// NewMiddleware constructs middleware.
func NewMiddleware(provider identity.Provider) *Middleware {
	return &Middleware{provider: provider}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	caller, err := m.provider.CurrentCaller(c.UserContext(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(callerKey, caller)
	return c.Next()
}

// CallerFromContext retrieves the authenticated caller.
func CallerFromContext(c *fiber.Ctx) (domain.Caller, bool) {
	val := c.Locals(callerKey)
	if val == nil {
		return domain.Caller{}, false
	}
	caller, ok := val.(domain.Caller)
	return caller, ok
}
