package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/Lekhangit/server-side/domain/user"
	"github.com/Lekhangit/server-side/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestAuthService builds a real auth service on an in-memory database.
func newTestAuthService(t *testing.T) *auth.AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := auth.NewUserRepository(db)
	require.NoError(t, repo.Migrate())

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		AccessSecret:        "test-access-secret",
		RefreshSecret:       "test-refresh-secret",
		AccessTokenDuration: 15 * time.Minute,
		Issuer:              "shoe-store-test",
	})
	return auth.NewAuthService(repo, auth.NewPasswordHasher(bcrypt.MinCost), jwtManager)
}

func newTestApp(authPort auth.AuthPort) *fiber.App {
	return newServer(Config{MaxImageSize: 1024}, authPort, &mockCatalogPort{}, &mockLogger{})
}

type testResponse struct {
	status int
	body   []byte
}

func (r testResponse) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), "body: %s", r.body)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{status: resp.StatusCode, body: data}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestSessionScenario(t *testing.T) {
	app := newTestApp(newTestAuthService(t))
	creds := CredentialsRequest{Username: "alice", Password: "pw123"}

	resp := doJSON(t, app, "POST", "/users/signup", creds, nil)
	require.Equal(t, http.StatusCreated, resp.status, "signup body: %s", resp.body)
	var created MessageResponse
	resp.decode(t, &created)
	assert.Equal(t, "User registered successfully!", created.Message)

	resp = doJSON(t, app, "POST", "/users/login", creds, nil)
	require.Equal(t, http.StatusOK, resp.status, "login body: %s", resp.body)
	var tokens TokenResponse
	resp.decode(t, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	resp = doJSON(t, app, "GET", "/users/profile", nil, bearer(tokens.AccessToken))
	require.Equal(t, http.StatusOK, resp.status, "profile body: %s", resp.body)
	var profile ProfileResponse
	resp.decode(t, &profile)
	assert.Equal(t, "alice", profile.Username)

	for i := 0; i < 3; i++ {
		resp = doJSON(t, app, "POST", "/users/token", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
		require.Equal(t, http.StatusOK, resp.status, "refresh body: %s", resp.body)
		var refreshed AccessTokenResponse
		resp.decode(t, &refreshed)
		require.NotEmpty(t, refreshed.AccessToken)

		resp = doJSON(t, app, "GET", "/users/profile", nil, bearer(refreshed.AccessToken))
		assert.Equal(t, http.StatusOK, resp.status)
	}

	resp = doJSON(t, app, "POST", "/users/logout", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, resp.status, "logout body: %s", resp.body)
	var loggedOut MessageResponse
	resp.decode(t, &loggedOut)
	assert.Equal(t, "Logged out successfully.", loggedOut.Message)

	resp = doJSON(t, app, "POST", "/users/token", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = doJSON(t, app, "POST", "/users/logout", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(newTestAuthService(t))

	resp := doJSON(t, app, "POST", "/users/signup", CredentialsRequest{Username: "alice", Password: "pw123"}, nil)
	require.Equal(t, http.StatusCreated, resp.status)

	wrongPassword := doJSON(t, app, "POST", "/users/login", CredentialsRequest{Username: "alice", Password: "nope"}, nil)
	unknownUser := doJSON(t, app, "POST", "/users/login", CredentialsRequest{Username: "mallory", Password: "pw123"}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.status)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.status)
	assert.Equal(t, string(wrongPassword.body), string(unknownUser.body))

	var body ErrorResponse
	wrongPassword.decode(t, &body)
	assert.Equal(t, "Invalid username or password.", body.Message)
}

func TestSignup_Failures(t *testing.T) {
	app := newTestApp(newTestAuthService(t))

	resp := doJSON(t, app, "POST", "/users/signup", CredentialsRequest{Username: "alice", Password: "pw123"}, nil)
	require.Equal(t, http.StatusCreated, resp.status)

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantKind    string
		wantMessage string
	}{
		{
			name:        "duplicate username",
			body:        CredentialsRequest{Username: "alice", Password: "other"},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "conflict",
			wantMessage: "Username already exists.",
		},
		{
			name:        "missing password",
			body:        CredentialsRequest{Username: "bob"},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "bad_request",
			wantMessage: "Username and password are required.",
		},
		{
			name:        "missing username",
			body:        map[string]string{"password": "pw123"},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "bad_request",
			wantMessage: "Username and password are required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/users/signup", tt.body, nil)
			assert.Equal(t, tt.wantStatus, resp.status)

			var body ErrorResponse
			resp.decode(t, &body)
			assert.Equal(t, tt.wantKind, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestRefreshAndLogout_MissingToken(t *testing.T) {
	app := newTestApp(newTestAuthService(t))

	for _, path := range []string{"/users/token", "/users/logout"} {
		t.Run(path, func(t *testing.T) {
			resp := doJSON(t, app, "POST", path, map[string]string{}, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.status)

			var body ErrorResponse
			resp.decode(t, &body)
			assert.Equal(t, "Refresh token is required.", body.Message)
		})
	}
}

func TestRefresh_UnknownToken(t *testing.T) {
	app := newTestApp(newTestAuthService(t))

	resp := doJSON(t, app, "POST", "/users/token", RefreshTokenRequest{RefreshToken: "never-issued"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
}

func TestProfile_RejectsRefreshToken(t *testing.T) {
	service := newTestAuthService(t)
	app := newTestApp(service)

	_, err := service.Signup(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	tokens, err := service.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	resp := doJSON(t, app, "GET", "/users/profile", nil, bearer(tokens.RefreshToken))
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestProfile_UserRemoved(t *testing.T) {
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "gone", Username: "ghost"}, nil
		},
		getUserFunc: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, auth.ErrUserNotFound
		},
	}
	app := newTestApp(mockAuth)

	resp := doJSON(t, app, "GET", "/users/profile", nil, bearer("token"))
	assert.Equal(t, http.StatusNotFound, resp.status)

	var body ErrorResponse
	resp.decode(t, &body)
	assert.Equal(t, "User not found.", body.Message)
}

func TestProfile_InternalErrorIsHidden(t *testing.T) {
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "u1", Username: "alice"}, nil
		},
		getUserFunc: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, io.ErrUnexpectedEOF
		},
	}
	app := newTestApp(mockAuth)

	resp := doJSON(t, app, "GET", "/users/profile", nil, bearer("token"))
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.NotContains(t, string(resp.body), io.ErrUnexpectedEOF.Error())
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(newTestAuthService(t))

	req := httptest.NewRequest("POST", "/users/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&mockAuthPort{})

	resp := doJSON(t, app, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, string(resp.body), `"healthy"`)
}
