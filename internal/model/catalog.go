// Package model defines the core domain models used throughout the application.
package model

// ProductOption is a named product dimension such as "Size" or "Color".
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// CatalogItem is a single purchasable product after normalization.
// ID is unique across a pipeline run; all prices share one currency.
type CatalogItem struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Vendor         string          `json:"vendor,omitempty"`
	Category       string          `json:"category,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Options        []ProductOption `json:"options,omitempty"`
	Price          float64         `json:"price"`
	InventoryCount int             `json:"inventory_count"`
}

// InStock reports whether at least one unit is available.
func (c CatalogItem) InStock() bool {
	return c.InventoryCount > 0
}
