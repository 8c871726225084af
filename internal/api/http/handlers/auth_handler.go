package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chatbot/internal/api/dto"
	"github.com/spec-kit/support-chatbot/internal/auth"
	apperrors "github.com/spec-kit/support-chatbot/pkg/util"
)

// AuthHandler issues tokens for the operator account that owns the
// admin ticket API.
type AuthHandler struct {
	tokens       *auth.TokenManager
	username     string
	passwordHash string
}

// NewAuthHandler constructs handler. passwordHash is a bcrypt hash of
// the operator password.
func NewAuthHandler(tokens *auth.TokenManager, username, passwordHash string) *AuthHandler {
	return &AuthHandler{tokens: tokens, username: username, passwordHash: passwordHash}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username != h.username {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(h.passwordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Username)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: expiresAt}})
}
