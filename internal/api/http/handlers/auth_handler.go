package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/broncodesk/ticket-tracker/internal/api/dto"
	"github.com/broncodesk/ticket-tracker/internal/auth"
	"github.com/broncodesk/ticket-tracker/internal/identity"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// AuthHandler serves session endpoints.
type AuthHandler struct {
	identity *identity.Service
}

// NewAuthHandler constructs handler.
func NewAuthHandler(service *identity.Service) *AuthHandler {
	return &AuthHandler{identity: service}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidation("email and password required", nil)
	}

	token, expiresAt, err := h.identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: expiresAt}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.CallerResponse{
		ID:   caller.ID,
		Name: caller.Name,
		Role: string(caller.Role),
		Team: caller.Team,
	}})
}
