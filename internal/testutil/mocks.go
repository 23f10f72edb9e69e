package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/Veraticus/stylist/internal/model"
)

// StaticCatalog is a catalog source returning fixed items.
type StaticCatalog struct {
	Err   error
	Items []model.CatalogItem
	calls int
	mu    sync.Mutex
}

// Products returns a copy of the configured items or error.
func (c *StaticCatalog) Products(_ context.Context, _ string) ([]model.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.Err != nil {
		return nil, c.Err
	}
	return append([]model.CatalogItem(nil), c.Items...), nil
}

// Calls returns how many times Products was called.
func (c *StaticCatalog) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// MockGenerator returns a canned response and records the prompts it receives.
type MockGenerator struct {
	Err      error
	Response string
	prompts  []string
	mu       sync.Mutex
}

// Generate records prompt and returns the canned response.
func (g *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

// Prompts returns the prompts received so far.
func (g *MockGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// MockEmbedder produces deterministic vectors: one dimension per vocabulary
// word, set to the number of times the word occurs in the text. Texts listed
// in Fail, or every text when FailAll is set, return Err.
type MockEmbedder struct {
	Err        error
	Fail       map[string]bool
	Vocabulary []string
	FailAll    bool
	calls      int
	mu         sync.Mutex
}

// Embed returns the bag-of-words vector for text.
func (e *MockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.FailAll || e.Fail[text] {
		return nil, e.Err
	}

	lower := strings.ToLower(text)
	vector := make([]float64, len(e.Vocabulary))
	for i, word := range e.Vocabulary {
		vector[i] = float64(strings.Count(lower, strings.ToLower(word)))
	}
	return vector, nil
}

// Calls returns how many times Embed was called.
func (e *MockEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// RecordingHistory is an in-memory history store.
type RecordingHistory struct {
	Err     error
	records []model.RecommendationRecord
	mu      sync.Mutex
}

// SaveRecommendation stores a copy of record unless Err is set.
func (h *RecordingHistory) SaveRecommendation(_ context.Context, record *model.RecommendationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Err != nil {
		return h.Err
	}
	h.records = append(h.records, *record)
	return nil
}

// GetRecentRecommendations returns up to limit records for shopID, newest first.
func (h *RecordingHistory) GetRecentRecommendations(_ context.Context, shopID string, limit int) ([]model.RecommendationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Err != nil {
		return nil, h.Err
	}
	out := make([]model.RecommendationRecord, 0)
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		if h.records[i].ShopID == shopID {
			out = append(out, h.records[i])
		}
	}
	return out, nil
}

// Records returns every saved record in insertion order.
func (h *RecordingHistory) Records() []model.RecommendationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.RecommendationRecord(nil), h.records...)
}
