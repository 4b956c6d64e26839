package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID            string         `gorm:"primaryKey;type:text"`
	Username      string         `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash  string         `gorm:"not null;type:text"`
	RefreshTokens []RefreshToken `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// RefreshToken is a refresh token currently held by a user.
// Deleting the row revokes the token.
type RefreshToken struct {
	ID        string `gorm:"primaryKey;type:text"`
	UserID    string `gorm:"index;not null;type:text"`
	Token     string `gorm:"uniqueIndex;not null;type:text"`
	CreatedAt time.Time
}

// TableName returns the table name for the RefreshToken entity.
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims represents the identity carried by a token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
