package models

import (
	"time"

	"github.com/gocql/gocql"
)

// CatalogItem is a reusable product template a shopkeeper can attach a
// listing to. Its lifecycle is independent from the products that use it.
type CatalogItem struct {
	ID        gocql.UUID        `json:"id" db:"catalog_id"`
	Name      string            `json:"name" db:"name"`
	Brand     string            `json:"brand" db:"brand"`
	Category  string            `json:"category" db:"category"`
	Specs     map[string]string `json:"specs,omitempty" db:"specs"`
	ImageURL  string            `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}
