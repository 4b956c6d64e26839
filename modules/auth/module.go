package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the auth module configuration.
type Config struct {
	DBPath     string
	DBDebug    bool
	BcryptCost int
	JWT        JWTConfig
}

// AuthModule provides account and session services.
type AuthModule struct {
	config  Config
	db      *gorm.DB
	service *AuthService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(config Config, logger types.Logger) *AuthModule {
	if config.DBPath == "" {
		config.DBPath = "users.db"
	}
	return &AuthModule{
		config: config,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start opens the credential store and builds the auth service.
func (m *AuthModule) Start(_ context.Context) error {
	if err := m.config.JWT.Validate(); err != nil {
		return fmt.Errorf("invalid jwt config: %w", err)
	}

	logLevel := logger.Silent
	if m.config.DBDebug {
		logLevel = logger.Info
	}

	// Initialize SQLite database with GORM
	db, err := gorm.Open(sqlite.Open(m.config.DBPath+"?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	// Auto-migrate the user and refresh token schema
	repo := NewUserRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewAuthService(repo, NewPasswordHasher(m.config.BcryptCost), NewJWTManager(m.config.JWT))

	m.logger.Info("Auth module started", "database", m.config.DBPath)
	return nil
}

// Stop closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	m.logger.Info("Auth module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.config.DBPath,
		},
	}
}

// Service returns the auth service. It is nil until Start has run.
func (m *AuthModule) Service() *AuthService {
	return m.service
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	// Register signup service
	if err := helper.RegisterTypedRequestReplyService(
		container, "signup", json.Unmarshal, json.Marshal, m.handleSignup,
	); err != nil {
		return fmt.Errorf("failed to register signup service: %w", err)
	}

	// Register login service
	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	// Register refresh-token service
	if err := helper.RegisterTypedRequestReplyService(
		container, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh,
	); err != nil {
		return fmt.Errorf("failed to register refresh-token service: %w", err)
	}

	// Register logout service
	if err := helper.RegisterTypedRequestReplyService(
		container, "logout", json.Unmarshal, json.Marshal, m.handleLogout,
	); err != nil {
		return fmt.Errorf("failed to register logout service: %w", err)
	}

	// Register validate-token service
	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	// Register get-user service
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "signup, login, refresh-token, logout, validate-token, get-user")
	return nil
}

func (m *AuthModule) handleSignup(ctx context.Context, req SignupRequest, _ *mono.Msg) (SignupResponse, error) {
	user, err := m.service.Signup(ctx, req.Username, req.Password)
	if err != nil {
		return SignupResponse{}, err
	}

	return SignupResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, err := m.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	accessToken, err := m.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return RefreshResponse{}, err
	}

	return RefreshResponse{AccessToken: accessToken}, nil
}

func (m *AuthModule) handleLogout(ctx context.Context, req LogoutRequest, _ *mono.Msg) (LogoutResponse, error) {
	if err := m.service.Logout(ctx, req.RefreshToken); err != nil {
		return LogoutResponse{}, err
	}

	return LogoutResponse{LoggedOut: true}, nil
}

// handleValidateToken reports validation failures in the response body, not as errors.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := ErrInvalidToken.Error()
		if errors.Is(err, ErrExpiredToken) {
			errMsg = ErrExpiredToken.Error()
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil
	}

	return ValidateTokenResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}
