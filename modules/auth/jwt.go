package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
	// ErrMissingSecret is returned when a signing secret is not configured.
	ErrMissingSecret = errors.New("access and refresh token secrets are required")
	// ErrSharedSecret is returned when both token kinds would be signed with the same secret.
	ErrSharedSecret = errors.New("access and refresh token secrets must differ")
)

// JWTConfig holds JWT configuration.
//
// Access and refresh tokens are signed with separate secrets so that a leaked
// access secret cannot be used to mint refresh tokens.
type JWTConfig struct {
	AccessSecret        string
	RefreshSecret       string
	AccessTokenDuration time.Duration
	Issuer              string
}

// DefaultJWTConfig returns a configuration with the standard token lifetime.
// Secrets are left empty and must be supplied by the caller.
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		Issuer:              "shoe-store",
	}
}

// Validate checks that the configuration can sign tokens.
func (c JWTConfig) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return ErrMissingSecret
	}
	if c.AccessSecret == c.RefreshSecret {
		return ErrSharedSecret
	}
	return nil
}

// JWTClaims represents the custom claims for JWT tokens.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies access and refresh tokens.
type JWTManager struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	if config.AccessTokenDuration <= 0 {
		config.AccessTokenDuration = DefaultJWTConfig().AccessTokenDuration
	}
	return &JWTManager{
		config: config,
		now:    time.Now,
	}
}

// GenerateAccessToken generates a short-lived access token for the given user.
func (m *JWTManager) GenerateAccessToken(userID, username string) (string, error) {
	now := m.now()
	claims := JWTClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return sign(claims, m.config.AccessSecret)
}

// GenerateRefreshToken generates a refresh token for the given user.
// Refresh tokens carry no expiry; they stay usable until revoked.
func (m *JWTManager) GenerateRefreshToken(userID, username string) (string, error) {
	claims := JWTClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Issuer:   m.config.Issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}
	return sign(claims, m.config.RefreshSecret)
}

// ValidateAccessToken validates an access token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return m.validate(tokenString, m.config.AccessSecret, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return m.validate(tokenString, m.config.RefreshSecret, tokenTypeRefresh)
}

// AccessTokenDuration returns the access token lifetime.
func (m *JWTManager) AccessTokenDuration() time.Duration {
	return m.config.AccessTokenDuration
}

func sign(claims JWTClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *JWTManager) validate(tokenString, secret, tokenType string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
