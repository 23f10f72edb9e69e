package model

import "time"

// RecommendationRecord is the persisted outcome of one completed request.
// It is immutable once saved.
type RecommendationRecord struct {
	CreatedAt   time.Time   `json:"created_at"`
	ID          string      `json:"id"`
	ShopID      string      `json:"shop_id"`
	Advice      string      `json:"advice"`
	Preferences Preferences `json:"preferences"`
	ProductIDs  []string    `json:"product_ids"`
}

// Recommendation is the result returned to the submission surface.
// Error is set only when no catalog item was admissible.
type Recommendation struct {
	Recommendation *string          `json:"recommendation"`
	Error          *string          `json:"error"`
	Preferences    Preferences      `json:"preferences"`
	ColorPalette   []string         `json:"color_palette"`
	Products       ScoredCandidates `json:"products"`
}
