package shoe

import (
	"time"
)

// Shoe represents a shoe in the inventory.
type Shoe struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Type      string    `gorm:"size:100" json:"type"`
	Sizes     []float64 `gorm:"serializer:json" json:"sizes"`
	Color     string    `gorm:"size:100" json:"color"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Image     string    `gorm:"size:200" json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Shoe entity.
func (Shoe) TableName() string {
	return "shoes"
}
