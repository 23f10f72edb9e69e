// Package engine implements the recommendation pipeline: budget filtering,
// semantic ranking, consulting the text generator and resolving its picks
// into concrete products.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/stylist/internal/catalog"
	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/llm"
	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/service"
)

// NoMatchesMessage is returned to the shopper when nothing fits their budget.
const NoMatchesMessage = "No products match your budget right now. Try a wider budget range."

// historyWriteTimeout bounds the best-effort history write.
const historyWriteTimeout = 5 * time.Second

// Config holds configuration options for the recommender.
type Config struct {
	Logger     *slog.Logger
	Observer   Observer
	MaxResults int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxResults: MaxRecommendations,
		Observer:   NopObserver{},
	}
}

// Recommender orchestrates one recommendation request end to end.
type Recommender struct {
	catalog   catalog.Source
	ranker    *Ranker
	generator llm.Generator
	history   service.HistoryStore
	observer  Observer
	logger    *slog.Logger
	selector  Selector
	now       func() time.Time
}

// New creates a recommender with the default configuration. generator and
// history may be nil: without a generator the selection fallbacks decide alone,
// without history nothing is recorded.
func New(source catalog.Source, ranker *Ranker, generator llm.Generator, history service.HistoryStore) *Recommender {
	return NewWithConfig(source, ranker, generator, history, DefaultConfig())
}

// NewWithConfig creates a recommender with custom configuration.
func NewWithConfig(source catalog.Source, ranker *Ranker, generator llm.Generator, history service.HistoryStore, config Config) *Recommender {
	observer := config.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Recommender{
		catalog:   source,
		ranker:    ranker,
		generator: generator,
		history:   history,
		observer:  observer,
		logger:    logger,
		selector:  NewSelector(config.MaxResults),
		now:       time.Now,
	}
}

// Recommend produces a recommendation for prefs from the shop's catalog.
// The only errors returned are invalid preferences and an unavailable
// catalog. Generator, embedding and history failures degrade the result
// instead.
func (r *Recommender) Recommend(ctx context.Context, shopID string, prefs model.Preferences) (model.Recommendation, error) {
	if err := prefs.Validate(); err != nil {
		return model.Recommendation{}, common.NewUserError(
			"Please choose a budget and keep the other answers short.",
			fmt.Errorf("%w: %v", common.ErrInvalidPreferences, err))
	}

	items, err := r.catalog.Products(ctx, shopID)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	admissible := FilterCatalog(items, prefs.BudgetTier)
	if len(admissible) == 0 {
		r.logger.InfoContext(ctx, common.ErrNoCandidates.Error(),
			"shop_id", shopID,
			"budget_tier", prefs.BudgetTier,
			"catalog_size", len(items))
		r.observer.NoCandidates(shopID)

		msg := NoMatchesMessage
		return model.Recommendation{
			Preferences:  prefs,
			Error:        &msg,
			ColorPalette: []string{},
			Products:     model.ScoredCandidates{},
		}, nil
	}

	ranked := r.ranker.Rank(ctx, admissible, prefs)

	pick := llm.ParsePick(r.generate(ctx, prefs, ranked))
	r.observer.PickParsed(pick.Source)

	products, tier := r.selector.Select(pick, ranked, prefs)
	r.observer.SelectionTier(tier)

	r.logger.InfoContext(ctx, "recommendation ready",
		"shop_id", shopID,
		"catalog_size", len(items),
		"candidates", len(ranked),
		"scored", ranked.AnyScored(),
		"pick_source", pick.Source,
		"tier", tier,
		"products", len(products))

	rec := model.Recommendation{
		Preferences:  prefs,
		ColorPalette: pick.ColorPalette,
		Products:     products,
	}
	if pick.Narrative != "" {
		narrative := pick.Narrative
		rec.Recommendation = &narrative
	}

	r.record(ctx, shopID, prefs, pick.Narrative, products)

	return rec, nil
}

// generate asks the generator for picks. Failures yield empty text so the
// selection fallbacks still run.
func (r *Recommender) generate(ctx context.Context, prefs model.Preferences, ranked model.ScoredCandidates) string {
	if r.generator == nil {
		return ""
	}

	text, err := r.generator.Generate(ctx, llm.BuildPrompt(prefs, ranked))
	if err != nil {
		r.logger.WarnContext(ctx, "text generation failed", "candidates", len(ranked), "error", err)
		return ""
	}
	return text
}

// record persists the outcome without affecting the caller.
func (r *Recommender) record(ctx context.Context, shopID string, prefs model.Preferences, advice string, products model.ScoredCandidates) {
	if r.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	record := &model.RecommendationRecord{
		ID:          uuid.NewString(),
		ShopID:      shopID,
		Preferences: prefs,
		Advice:      advice,
		ProductIDs:  products.IDs(),
		CreatedAt:   r.now().UTC(),
	}

	if err := r.history.SaveRecommendation(ctx, record); err != nil {
		r.logger.WarnContext(ctx, "failed to record recommendation", "shop_id", shopID, "error", err)
		r.observer.HistoryWriteFailed(err)
	}
}
