package testutil

import (
	"fmt"

	"github.com/Veraticus/stylist/internal/model"
)

// CatalogBuilder assembles catalog items for tests with a fluent API.
type CatalogBuilder struct {
	items []model.CatalogItem
}

// NewCatalogBuilder creates an empty builder.
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{}
}

// With adds a fully specified item.
func (b *CatalogBuilder) With(item model.CatalogItem) *CatalogBuilder {
	b.items = append(b.items, item)
	return b
}

// WithProduct adds an in-stock item with the given title, price and tags. Its
// id is derived from its position.
func (b *CatalogBuilder) WithProduct(title string, price float64, tags ...string) *CatalogBuilder {
	return b.With(model.CatalogItem{
		ID:             fmt.Sprintf("p%d", len(b.items)+1),
		Title:          title,
		Price:          price,
		InventoryCount: 5,
		Tags:           append([]string{}, tags...),
	})
}

// WithSoldOut adds an item with no inventory.
func (b *CatalogBuilder) WithSoldOut(title string, price float64) *CatalogBuilder {
	return b.With(model.CatalogItem{
		ID:    fmt.Sprintf("p%d", len(b.items)+1),
		Title: title,
		Price: price,
		Tags:  []string{},
	})
}

// WithBoutique adds a small, varied catalog suitable for most tests.
func (b *CatalogBuilder) WithBoutique() *CatalogBuilder {
	return b.
		WithProduct("Linen Shirt", 39, "summer", "casual", "breathable").
		WithProduct("Silk Slip Dress", 120, "evening", "formal", "summer").
		WithProduct("Wool Overcoat", 240, "winter", "formal", "warm").
		WithProduct("Canvas Sneakers", 55, "casual", "everyday").
		WithProduct("Rain Shell Jacket", 95, "rainy", "outdoor", "casual").
		WithSoldOut("Cashmere Scarf", 80)
}

// Build returns a copy of the assembled items.
func (b *CatalogBuilder) Build() []model.CatalogItem {
	return append([]model.CatalogItem(nil), b.items...)
}
