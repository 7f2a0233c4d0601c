package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductUpdateEmpty(t *testing.T) {
	assert.True(t, ProductUpdate{}.Empty())

	price := 9.99
	assert.False(t, ProductUpdate{Price: &price}.Empty())
}

func TestProductApplyUpdate(t *testing.T) {
	p := Product{Title: "old", Description: "desc", Price: 10, Stock: 3}

	title := "new"
	stock := 0
	p.ApplyUpdate(ProductUpdate{Title: &title, Stock: &stock})

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, 0, p.Stock, "zero stock is a valid value, not a missing field")
	assert.Equal(t, "desc", p.Description)
	assert.Equal(t, 10.0, p.Price)
}
