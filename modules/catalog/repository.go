package catalog

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Lekhangit/server-side/domain/shoe"
	"gorm.io/gorm"
)

// Repository provides access to shoe storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shoe repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the shoes table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Shoe{})
}

// Create saves a new shoe to the database.
func (r *Repository) Create(ctx context.Context, shoe *domain.Shoe) error {
	if err := r.db.WithContext(ctx).Create(shoe).Error; err != nil {
		return fmt.Errorf("failed to create shoe: %w", err)
	}
	return nil
}

// FindByID retrieves a shoe by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Shoe, error) {
	var shoe domain.Shoe
	if err := r.db.WithContext(ctx).First(&shoe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoeNotFound
		}
		return nil, fmt.Errorf("failed to find shoe: %w", err)
	}
	return &shoe, nil
}

// FindAll retrieves all shoes, newest first.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Shoe, error) {
	var shoes []*domain.Shoe
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&shoes).Error; err != nil {
		return nil, fmt.Errorf("failed to find shoes: %w", err)
	}
	return shoes, nil
}

// Delete removes a shoe by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Shoe{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete shoe: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrShoeNotFound
	}
	return nil
}
