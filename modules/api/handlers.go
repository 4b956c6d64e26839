package api

import (
	domain "github.com/Lekhangit/server-side/domain/user"
	"github.com/Lekhangit/server-side/modules/auth"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for user accounts and sessions.
type Handlers struct {
	auth   auth.AuthPort
	logger types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authAdapter auth.AuthPort, logger types.Logger) *Handlers {
	return &Handlers{
		auth:   authAdapter,
		logger: logger,
	}
}

// Signup handles user registration.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Call auth service
	if _, err := h.auth.Signup(c.UserContext(), req.Username, req.Password); err != nil {
		return writeError(c, h.logger, err, "Failed to register user. Please try again later.")
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "User registered successfully!",
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Call auth service
	tokens, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to log in. Please try again later.")
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Token exchanges a refresh token for a new access token.
func (h *Handlers) Token(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Call auth service
	accessToken, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to refresh token.")
	}

	return c.Status(fiber.StatusOK).JSON(AccessTokenResponse{
		AccessToken: accessToken,
	})
}

// Logout revokes a refresh token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Call auth service
	if err := h.auth.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return writeError(c, h.logger, err, "Failed to log out.")
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Logged out successfully.",
	})
}

// Profile returns the current user's profile.
// This is a protected endpoint that requires a valid access token.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	// Get user claims from context (set by auth middleware)
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	// Get full user details from auth service
	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch profile.")
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		Username: user.Username,
	})
}
