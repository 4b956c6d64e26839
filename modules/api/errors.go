package api

import (
	"errors"

	"github.com/Lekhangit/server-side/modules/auth"
	"github.com/Lekhangit/server-side/modules/catalog"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// errorMapping pairs a domain error with the response sent for it.
type errorMapping struct {
	err     error
	status  int
	kind    string
	message string
}

var errorMappings = []errorMapping{
	{auth.ErrMissingCredentials, fiber.StatusBadRequest, "bad_request", "Username and password are required."},
	{auth.ErrPasswordTooLong, fiber.StatusBadRequest, "bad_request", "Password must be at most 72 bytes."},
	{auth.ErrUsernameTaken, fiber.StatusBadRequest, "conflict", "Username already exists."},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "unauthorized", "Invalid username or password."},
	{auth.ErrRefreshTokenRequired, fiber.StatusUnauthorized, "unauthorized", "Refresh token is required."},
	{auth.ErrRefreshTokenNotFound, fiber.StatusForbidden, "forbidden", "Invalid refresh token."},
	{auth.ErrRefreshTokenInvalid, fiber.StatusForbidden, "forbidden", "Invalid or expired refresh token."},
	{auth.ErrExpiredToken, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired token."},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired token."},
	{auth.ErrUserNotFound, fiber.StatusNotFound, "not_found", "User not found."},
	{catalog.ErrInvalidShoe, fiber.StatusBadRequest, "bad_request", "Invalid shoe data."},
	{catalog.ErrImageTooLarge, fiber.StatusBadRequest, "bad_request", "Image is too large."},
	{catalog.ErrUnsupportedImage, fiber.StatusBadRequest, "bad_request", "Only image uploads are accepted."},
	{catalog.ErrShoeNotFound, fiber.StatusNotFound, "not_found", "Shoe not found."},
	{catalog.ErrImageNotFound, fiber.StatusNotFound, "not_found", "Image not found."},
}

// writeError translates a domain error into its HTTP response. Errors with no
// mapping are logged and answered with fallback as a 500.
func writeError(c *fiber.Ctx, logger types.Logger, err error, fallback string) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(ErrorResponse{
				Error:   m.kind,
				Message: m.message,
			})
		}
	}

	logger.Error("Request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: fallback,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
