package engine

import "github.com/Veraticus/stylist/internal/model"

// Observer receives pipeline events that never affect the returned result.
// Implementations must be safe for concurrent use.
type Observer interface {
	NoCandidates(shopID string)
	EmbeddingFailed(reason string)
	PickParsed(source model.PickSource)
	SelectionTier(tier Tier)
	HistoryWriteFailed(err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) NoCandidates(string)         {}
func (NopObserver) EmbeddingFailed(string)      {}
func (NopObserver) PickParsed(model.PickSource) {}
func (NopObserver) SelectionTier(Tier)          {}
func (NopObserver) HistoryWriteFailed(error)    {}
