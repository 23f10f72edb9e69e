package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/stylist/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prefs := model.Preferences{
		BudgetTier: model.BudgetUnderLow,
		Size:       "M",
		Style:      "Casual",
		Weather:    "Warm",
	}
	candidates := model.ScoredCandidates{
		model.NewScoredCandidate(model.CatalogItem{ID: "1", Title: "Linen Shirt", Price: 39.5, Tags: []string{"summer", "casual"}}, 0.873),
		{CatalogItem: model.CatalogItem{ID: "2", Title: "Canvas Tote", Price: 20}},
	}

	prompt := BuildPrompt(prefs, candidates)

	assert.Contains(t, prompt, "Budget: Under 50")
	assert.Contains(t, prompt, "Size: M")
	assert.Contains(t, prompt, "Occasion: no preference")
	assert.Contains(t, prompt, "1. Linen Shirt - $39.50 - Tags: summer, casual - Match: 87%")
	assert.Contains(t, prompt, "2. Canvas Tote - $20.00\n")
	assert.NotContains(t, prompt, "Canvas Tote - $20.00 - Match")
	assert.Contains(t, prompt, "recommendation_text")
	assert.Contains(t, prompt, "color_palette")
	assert.Contains(t, prompt, "recommended_titles")
}

func TestBuildPrompt_CandidateLimit(t *testing.T) {
	candidates := make(model.ScoredCandidates, 0, 30)
	for i := 1; i <= 30; i++ {
		candidates = append(candidates, model.ScoredCandidate{
			CatalogItem: model.CatalogItem{ID: fmt.Sprint(i), Title: fmt.Sprintf("Item %02d", i), Price: 10},
		})
	}

	prompt := BuildPrompt(model.Preferences{BudgetTier: model.BudgetUnbounded}, candidates)

	assert.Contains(t, prompt, "Item 20")
	assert.NotContains(t, prompt, "Item 21")
	assert.Equal(t, PromptCandidateLimit, strings.Count(prompt, " - $10.00"))
}
