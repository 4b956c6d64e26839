package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/Lekhangit/server-side/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the authentication operations other modules may use.
type AuthPort interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// Compile-time interface checks.
var _ AuthPort = (*AuthService)(nil)
var _ AuthPort = (*AuthAdapter)(nil)

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Signup registers a user via the signup service.
func (a *AuthAdapter) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	req := SignupRequest{Username: username, Password: password}
	var resp SignupResponse

	if err := callService(ctx, a.container, "signup", &req, &resp); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        resp.ID,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// Login authenticates a user via the login service.
func (a *AuthAdapter) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse

	if err := callService(ctx, a.container, "login", &req, &resp); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (a *AuthAdapter) Refresh(ctx context.Context, refreshToken string) (string, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp RefreshResponse

	if err := callService(ctx, a.container, "refresh-token", &req, &resp); err != nil {
		return "", err
	}

	return resp.AccessToken, nil
}

// Logout revokes a refresh token via the logout service.
func (a *AuthAdapter) Logout(ctx context.Context, refreshToken string) error {
	req := LogoutRequest{RefreshToken: refreshToken}
	var resp LogoutResponse

	return callService(ctx, a.container, "logout", &req, &resp)
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := callService(ctx, a.container, "validate-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		if resp.Error == ErrExpiredToken.Error() {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		UserID:   resp.UserID,
		Username: resp.Username,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := callService(ctx, a.container, "get-user", &req, &resp); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        resp.ID,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// callService sends req to the named request-reply service and decodes the
// reply into resp. Errors are restored to package sentinels where possible.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, RestoreError(err))
	}
	return nil
}

var knownErrors = []error{
	ErrMissingCredentials,
	ErrPasswordTooLong,
	ErrUsernameTaken,
	ErrInvalidCredentials,
	ErrRefreshTokenRequired,
	ErrRefreshTokenNotFound,
	ErrRefreshTokenInvalid,
	ErrUserNotFound,
	ErrExpiredToken,
	ErrInvalidToken,
}

// RestoreError maps an error that crossed the service container as text back
// to the auth sentinel it was created from. Unknown errors are returned as is.
func RestoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w (%s)", known, msg)
		}
	}
	return err
}
