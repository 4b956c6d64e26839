package auth

import (
	"context"
	"errors"
	"time"

	domain "github.com/Lekhangit/server-side/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository stores users and the refresh tokens they hold.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Migrate creates or updates the users and refresh_tokens tables.
func (r *UserRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.User{}, &domain.RefreshToken{})
}

// Create creates a new user in the database.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Omit("RefreshTokens").Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return result.Error
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// UsernameExists checks if a user with the given username exists.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindByRefreshToken finds the user whose token collection contains token.
func (r *UserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).
		Joins("JOIN refresh_tokens ON refresh_tokens.user_id = users.id").
		Where("refresh_tokens.token = ?", token).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// AddRefreshToken appends token to the user's collection.
func (r *UserRepository) AddRefreshToken(ctx context.Context, userID, token string) error {
	return r.db.WithContext(ctx).Create(&domain.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}).Error
}

// RemoveRefreshToken removes the exact token from the user's collection.
func (r *UserRepository) RemoveRefreshToken(ctx context.Context, userID, token string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&domain.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// RefreshTokens returns the tokens currently held by the user.
func (r *UserRepository) RefreshTokens(ctx context.Context, userID string) ([]string, error) {
	var tokens []string
	result := r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("token", &tokens)
	if result.Error != nil {
		return nil, result.Error
	}
	return tokens, nil
}
