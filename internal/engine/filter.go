package engine

import (
	"math"

	"github.com/Veraticus/stylist/internal/model"
)

// BudgetHeadroom inflates a tier's ceiling so slightly pricier items stay eligible.
const BudgetHeadroom = 1.25

// FilterCatalog returns the in-stock items priced within the tier's ceiling
// plus headroom, in catalog order. The input is not modified.
func FilterCatalog(items []model.CatalogItem, tier model.BudgetTier) []model.CatalogItem {
	ceiling, bounded := tier.Ceiling()
	limit := ceiling * BudgetHeadroom

	admissible := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if !item.InStock() {
			continue
		}
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0 {
			continue
		}
		if bounded && item.Price > limit {
			continue
		}
		admissible = append(admissible, item)
	}
	return admissible
}
