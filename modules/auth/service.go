package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/Lekhangit/server-side/domain/user"
	"github.com/google/uuid"
)

// AuthService handles signup, login, token refresh and logout.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Signup registers a new user. No session is issued.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	// Validate password length (bcrypt has 72-byte limit)
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// Check if user already exists
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	// Hash password
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user, stores a new refresh token for them and
// returns it together with an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	// Find user by username
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Verify password
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Generate tokens
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Persist refresh token on its owner
	if err := s.repo.AddRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh issues a new access token for a refresh token that is still held by
// its owner. The refresh token itself is left in place.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrRefreshTokenRequired
	}

	// Token must still be held by a user
	if _, err := s.repo.FindByRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to find refresh token owner: %w", err)
	}

	// Validate refresh token
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrRefreshTokenInvalid
	}

	accessToken, err := s.jwt.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token by removing it from its owner's collection.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}

	user, err := s.repo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return err
		}
		return fmt.Errorf("failed to find refresh token owner: %w", err)
	}

	if err := s.repo.RemoveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}

	return nil
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
