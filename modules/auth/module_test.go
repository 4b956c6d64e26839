package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func startTestModule(t *testing.T) *AuthModule {
	t.Helper()

	module := NewModule(Config{
		DBPath:     filepath.Join(t.TempDir(), "users.db"),
		BcryptCost: bcrypt.MinCost,
		JWT:        testJWTConfig(),
	}, &mockLogger{})

	require.NoError(t, module.Start(context.Background()))
	t.Cleanup(func() {
		_ = module.Stop(context.Background())
	})
	return module
}

func TestAuthModule_Start_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name string
		jwt  JWTConfig
	}{
		{name: "missing secrets", jwt: DefaultJWTConfig()},
		{name: "shared secret", jwt: JWTConfig{AccessSecret: "same", RefreshSecret: "same"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := NewModule(Config{
				DBPath: filepath.Join(t.TempDir(), "users.db"),
				JWT:    tt.jwt,
			}, &mockLogger{})

			assert.Error(t, module.Start(context.Background()))
			assert.Nil(t, module.Service())
		})
	}
}

func TestAuthModule_Handlers(t *testing.T) {
	module := startTestModule(t)
	ctx := context.Background()

	signup, err := module.handleSignup(ctx, SignupRequest{Username: "alice", Password: "pw123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", signup.Username)

	_, err = module.handleSignup(ctx, SignupRequest{Username: "alice", Password: "pw123"}, nil)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	login, err := module.handleLogin(ctx, LoginRequest{Username: "alice", Password: "pw123"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	valid, err := module.handleValidateToken(ctx, ValidateTokenRequest{Token: login.AccessToken}, nil)
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, signup.ID, valid.UserID)
	assert.Equal(t, "alice", valid.Username)

	invalid, err := module.handleValidateToken(ctx, ValidateTokenRequest{Token: "garbage"}, nil)
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	assert.Equal(t, ErrInvalidToken.Error(), invalid.Error)

	refreshed, err := module.handleRefresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	user, err := module.handleGetUser(ctx, GetUserRequest{UserID: signup.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	out, err := module.handleLogout(ctx, LogoutRequest{RefreshToken: login.RefreshToken}, nil)
	require.NoError(t, err)
	assert.True(t, out.LoggedOut)

	_, err = module.handleRefresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken}, nil)
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestAuthModule_Health(t *testing.T) {
	assert.False(t, NewModule(Config{}, &mockLogger{}).Health(context.Background()).Healthy)

	module := startTestModule(t)
	status := module.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, "operational", status.Message)
}
