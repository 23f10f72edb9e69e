package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/stylist/internal/model"
)

func strPtr(s string) *string { return &s }

func TestRenderRecommendation(t *testing.T) {
	prefs := model.Preferences{BudgetTier: model.BudgetMidRange, Style: "casual"}

	tests := []struct {
		name        string
		rec         model.Recommendation
		expected    []string
		notExpected []string
	}{
		{
			name: "full result",
			rec: model.Recommendation{
				Recommendation: strPtr("Layer the linen shirt over the tee."),
				Preferences:    prefs,
				ColorPalette:   []string{"navy", "sand"},
				Products: model.ScoredCandidates{
					model.NewScoredCandidate(model.CatalogItem{ID: "1", Title: "Linen Shirt", Price: 45, Tags: []string{"summer"}}, 0.87),
					{CatalogItem: model.CatalogItem{ID: "2", Title: "Basic Tee", Price: 12.5}},
				},
			},
			expected: []string{
				"Layer the linen shirt",
				"navy", "sand",
				"1. ", "Linen Shirt", "$45.00", "match 87%", "summer",
				"2. ", "Basic Tee", "$12.50",
			},
			notExpected: []string{"match 0%"},
		},
		{
			name: "no narrative",
			rec: model.Recommendation{
				Preferences:  prefs,
				ColorPalette: []string{},
				Products: model.ScoredCandidates{
					{CatalogItem: model.CatalogItem{ID: "2", Title: "Basic Tee", Price: 12.5}},
				},
			},
			expected:    []string{"Basic Tee"},
			notExpected: []string{"Stylist says", "Palette"},
		},
		{
			name: "no admissible items",
			rec: model.Recommendation{
				Error:        strPtr("No matching products found"),
				Preferences:  prefs,
				ColorPalette: []string{},
			},
			expected:    []string{"No matching products found"},
			notExpected: []string{"No products selected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderRecommendation(tt.rec)
			for _, e := range tt.expected {
				assert.Contains(t, out, e)
			}
			for _, ne := range tt.notExpected {
				assert.NotContains(t, out, ne)
			}
		})
	}
}

func TestRenderHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, RenderHistory(nil), "No recommendations recorded yet.")
	})

	t.Run("records", func(t *testing.T) {
		records := []model.RecommendationRecord{
			{
				ID:          "a",
				ShopID:      "shop",
				CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				Advice:      "Go bright.",
				Preferences: model.Preferences{BudgetTier: model.BudgetUnderLow, Style: "boho", Weather: "warm"},
				ProductIDs:  []string{"p1", "p2"},
			},
			{
				ID:          "b",
				ShopID:      "shop",
				CreatedAt:   time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
				Preferences: model.Preferences{BudgetTier: model.BudgetUnbounded},
			},
		}
		out := RenderHistory(records)
		assert.Contains(t, out, "Go bright.")
		assert.Contains(t, out, "boho / warm")
		assert.Contains(t, out, "p1, p2")
		assert.Contains(t, out, model.BudgetUnderLow.Label())
		assert.Contains(t, out, model.BudgetUnbounded.Label())
	})
}

func TestDescribePreferences(t *testing.T) {
	assert.Empty(t, DescribePreferences(model.Preferences{}))
	assert.Equal(t, "formal / wedding / M", DescribePreferences(model.Preferences{Style: "formal", Occasion: "wedding", Size: "M"}))
}
