package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID  `json:"id" db:"product_id"`
	ShopID      gocql.UUID  `json:"shop_id" db:"shop_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Price       float64     `json:"price" db:"price"`
	Stock       int         `json:"stock" db:"stock"`
	ImageURL    string      `json:"image_url,omitempty" db:"image_url"`
	CatalogID   *gocql.UUID `json:"catalog_id,omitempty" db:"catalog_id"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// ProductUpdate applies only the fields present.
type ProductUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
}

func (u ProductUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Price == nil &&
		u.Stock == nil && u.ImageURL == nil
}

func (p *Product) ApplyUpdate(u ProductUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
}
