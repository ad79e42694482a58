package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Product struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Price       float64        `db:"price" json:"price"`
	Category    string         `db:"category" json:"category"`
	Description string         `db:"description" json:"description"`
	Images      []ProductImage `db:"images" json:"images"`
	Stock       int            `db:"stock" json:"stock"`
	IsActive    bool           `db:"is_active" json:"isActive"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}
