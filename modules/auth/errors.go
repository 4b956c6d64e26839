package auth

import "errors"

// Sentinel errors returned by the auth service. Their messages are stable:
// they cross the service container as text and are matched at the HTTP edge.
var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike, so callers cannot tell which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRefreshTokenRequired is returned when no refresh token is supplied.
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	// ErrRefreshTokenNotFound is returned when no user holds the refresh token.
	ErrRefreshTokenNotFound = errors.New("refresh token not recognized")
	// ErrRefreshTokenInvalid is returned when a held refresh token fails verification.
	ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)
