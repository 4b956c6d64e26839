package api

import domain "github.com/Lekhangit/server-side/domain/shoe"

// CredentialsRequest is the body of signup and login requests.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the body of token refresh and logout requests.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is returned by a successful token refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ProfileResponse represents the authenticated user's profile.
type ProfileResponse struct {
	Username string `json:"username"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ShoeMessageResponse confirms a shoe mutation and echoes the shoe.
type ShoeMessageResponse struct {
	Message string       `json:"message"`
	Shoe    *domain.Shoe `json:"shoe"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
