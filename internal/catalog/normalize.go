package catalog

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/Veraticus/stylist/internal/model"
)

// MaxCatalogItems caps how many products a single request considers.
const MaxCatalogItems = 250

// Normalize converts raw records to catalog items. Records without an id or with
// a missing or non-numeric price or inventory are skipped, as are repeated ids.
// At most MaxCatalogItems items are returned, in source order.
func Normalize(raws []RawProduct, logger *slog.Logger) []model.CatalogItem {
	if logger == nil {
		logger = slog.Default()
	}

	items := make([]model.CatalogItem, 0, min(len(raws), MaxCatalogItems))
	seen := make(map[string]struct{}, len(raws))

	for _, raw := range raws {
		if len(items) == MaxCatalogItems {
			logger.Debug("catalog truncated", "limit", MaxCatalogItems, "received", len(raws))
			break
		}

		item, err := normalizeProduct(raw)
		if err != nil {
			logger.Debug("skipping catalog record", "title", raw.Title, "error", err)
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Debug("skipping duplicate catalog record", "id", item.ID)
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	return items
}

func normalizeProduct(raw RawProduct) (model.CatalogItem, error) {
	id, err := toID(raw.ID)
	if err != nil {
		return model.CatalogItem{}, err
	}

	price, err := toPrice(raw.Price)
	if err != nil {
		return model.CatalogItem{}, err
	}

	inventory, err := toInventory(raw.InventoryCount)
	if err != nil {
		return model.CatalogItem{}, err
	}

	description := raw.Description
	if description == "" {
		description = raw.BodyHTML
	}
	category := raw.Category
	if category == "" {
		category = raw.ProductType
	}

	options := make([]model.ProductOption, 0, len(raw.Options))
	for _, opt := range raw.Options {
		options = append(options, model.ProductOption{
			Name:   opt.Name,
			Values: append([]string(nil), opt.Values...),
		})
	}

	return model.CatalogItem{
		ID:             id,
		Title:          strings.TrimSpace(raw.Title),
		Description:    description,
		Vendor:         strings.TrimSpace(raw.Vendor),
		Category:       strings.TrimSpace(category),
		ImageURL:       raw.ImageURL,
		Tags:           toTags(raw.Tags),
		Options:        options,
		Price:          price,
		InventoryCount: inventory,
	}, nil
}

func toID(v any) (string, error) {
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return cast.ToStringE(int64(f))
	}
	id, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("invalid id: %w", err)
	}
	if id = strings.TrimSpace(id); id == "" {
		return "", fmt.Errorf("missing id")
	}
	return id, nil
}

func toPrice(v any) (float64, error) {
	switch v.(type) {
	case nil:
		return 0, fmt.Errorf("missing price")
	case bool:
		return 0, fmt.Errorf("invalid price %v", v)
	}
	if s, ok := v.(string); ok {
		v = strings.TrimPrefix(strings.TrimSpace(s), "$")
	}
	price, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("invalid price: %w", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("invalid price %v", price)
	}
	return price, nil
}

func toInventory(v any) (int, error) {
	switch v.(type) {
	case nil:
		return 0, fmt.Errorf("missing inventory")
	case bool:
		return 0, fmt.Errorf("invalid inventory %v", v)
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid inventory: %w", err)
	}
	return n, nil
}

// toTags accepts a comma separated string or a list.
func toTags(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		raw = strings.Split(t, ",")
	default:
		raw = cast.ToStringSlice(v)
	}

	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
