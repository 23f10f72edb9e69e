package model

import "math"

// ScoredCandidate is a catalog item that survived filtering, optionally
// carrying its semantic similarity to the shopper's query.
// A nil Score means similarity is unknown, not zero.
type ScoredCandidate struct {
	Score *float64 `json:"similarity_score,omitempty"`
	CatalogItem
}

// NewScoredCandidate wraps an item with a similarity score.
func NewScoredCandidate(item CatalogItem, score float64) ScoredCandidate {
	return ScoredCandidate{CatalogItem: item, Score: &score}
}

// HasScore reports whether a similarity score was computed.
func (c ScoredCandidate) HasScore() bool {
	return c.Score != nil
}

// ScoreValue returns the similarity score, or 0 when unknown.
func (c ScoredCandidate) ScoreValue() float64 {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}

// ScorePercent returns the score as a rounded display percentage.
func (c ScoredCandidate) ScorePercent() int {
	return int(math.Round(c.ScoreValue() * 100))
}

// ScoredCandidates is an ordered candidate list.
type ScoredCandidates []ScoredCandidate

// Unscored wraps items without similarity scores, preserving order.
func Unscored(items []CatalogItem) ScoredCandidates {
	out := make(ScoredCandidates, len(items))
	for i, item := range items {
		out[i] = ScoredCandidate{CatalogItem: item}
	}
	return out
}

// AnyScored reports whether at least one candidate carries a score.
func (c ScoredCandidates) AnyScored() bool {
	for _, cand := range c {
		if cand.HasScore() {
			return true
		}
	}
	return false
}

// TopN returns up to n leading candidates without reordering.
func (c ScoredCandidates) TopN(n int) ScoredCandidates {
	if n <= 0 {
		return ScoredCandidates{}
	}
	if n > len(c) {
		n = len(c)
	}
	out := make(ScoredCandidates, n)
	copy(out, c[:n])
	return out
}

// IDs returns the candidate IDs in order.
func (c ScoredCandidates) IDs() []string {
	ids := make([]string, len(c))
	for i, cand := range c {
		ids[i] = cand.ID
	}
	return ids
}
