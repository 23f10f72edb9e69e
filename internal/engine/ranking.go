package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/Veraticus/stylist/internal/embedding"
	"github.com/Veraticus/stylist/internal/model"
)

// Similarity scores texts against a query. The second value is false when the
// query could not be embedded, in which case no scores are returned.
type Similarity interface {
	Similarities(ctx context.Context, query string, texts []string, workers int) ([]float64, bool)
}

// Ranker orders admissible items by semantic similarity to the shopper's preferences.
type Ranker struct {
	similarity Similarity
	workers    int
}

// NewRanker creates a Ranker. A nil similarity disables semantic ranking.
func NewRanker(similarity Similarity, workers int) *Ranker {
	if workers <= 0 {
		workers = embedding.DefaultWorkers
	}
	return &Ranker{similarity: similarity, workers: workers}
}

// BuildQuery renders the preference text embedded as the ranking query.
func BuildQuery(prefs model.Preferences) string {
	var parts []string
	parts = append(parts, strings.TrimSpace(prefs.Style), strings.TrimSpace(prefs.Occasion), "outfit")
	if weather := strings.TrimSpace(prefs.Weather); weather != "" {
		parts = append(parts, "for", weather, "weather")
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Rank scores and sorts admissible items. When the query cannot be embedded
// the items are returned unscored in their original order. Items that fail to
// embed individually score 0 and stay in the list.
func (r *Ranker) Rank(ctx context.Context, admissible []model.CatalogItem, prefs model.Preferences) model.ScoredCandidates {
	if r == nil || r.similarity == nil || len(admissible) == 0 {
		return model.Unscored(admissible)
	}

	texts := make([]string, len(admissible))
	for i, item := range admissible {
		texts[i] = embedding.Project(item)
	}

	scores, ok := r.similarity.Similarities(ctx, BuildQuery(prefs), texts, r.workers)
	if !ok || len(scores) != len(admissible) {
		return model.Unscored(admissible)
	}

	ranked := make(model.ScoredCandidates, len(admissible))
	for i, item := range admissible {
		ranked[i] = model.NewScoredCandidate(item, scores[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreValue() > ranked[j].ScoreValue()
	})

	return ranked
}
