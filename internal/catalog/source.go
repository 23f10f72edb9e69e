// Package catalog loads shop catalogs from external sources and normalizes
// their loosely typed product records into model.CatalogItem values.
package catalog

import (
	"context"

	"github.com/Veraticus/stylist/internal/model"
)

// Source supplies the current catalog of a shop.
type Source interface {
	Products(ctx context.Context, shopID string) ([]model.CatalogItem, error)
}

// RawOption is a product option as received from a catalog source.
type RawOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// RawProduct is a product record before normalization. Identifiers, prices,
// inventory and tags arrive in whatever shape the source uses.
type RawProduct struct {
	ID             any         `json:"id"`
	Tags           any         `json:"tags"`
	Price          any         `json:"price"`
	InventoryCount any         `json:"inventory_count"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	BodyHTML       string      `json:"body_html"`
	Vendor         string      `json:"vendor"`
	Category       string      `json:"category"`
	ProductType    string      `json:"product_type"`
	ImageURL       string      `json:"image_url"`
	Options        []RawOption `json:"options"`
}
