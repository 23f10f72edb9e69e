package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/llm"
	"github.com/Veraticus/stylist/internal/service"
)

// Failure reasons reported to Config.OnFailure.
const (
	ReasonProvider    = "provider"
	ReasonBreakerOpen = "breaker_open"
	ReasonEmpty       = "empty_vector"
	ReasonCallerDone  = "caller_done"
)

// DefaultWorkers bounds concurrent provider calls in Similarities.
const DefaultWorkers = 8

var (
	errEmptyVector = errors.New("provider returned empty embedding")
	// errCallerDone marks provider errors caused by the caller's context
	// ending. They say nothing about provider health.
	errCallerDone = errors.New("caller context done")
)

// Config controls caching and failure handling of an Engine.
type Config struct {
	Logger          *slog.Logger
	OnFailure       func(reason string)
	Model           string
	CacheTTL        time.Duration
	BreakerTimeout  time.Duration
	BreakerFailures uint32
}

// Engine embeds text with memoization and a circuit breaker around the provider.
// It is safe for concurrent use.
type Engine struct {
	embedder  llm.Embedder
	store     service.EmbeddingStore
	cache     *vectorCache
	breaker   *gobreaker.CircuitBreaker[[]float64]
	logger    *slog.Logger
	onFailure func(reason string)
	model     string
}

// NewEngine creates an Engine. store may be nil to disable persistent memoization.
func NewEngine(embedder llm.Embedder, store service.EmbeddingStore, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:        "embedding-provider",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerDone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &Engine{
		embedder:  embedder,
		store:     store,
		cache:     newVectorCache(cfg.CacheTTL),
		breaker:   breaker,
		logger:    logger,
		onFailure: cfg.OnFailure,
		model:     cfg.Model,
	}
}

// Close releases the in-process cache.
func (e *Engine) Close() {
	e.cache.close()
}

// Embed returns the vector for text. The second value is false when no vector
// could be obtained; the cause is logged, never returned.
func (e *Engine) Embed(ctx context.Context, text string) ([]float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	key := CacheKey(e.model, text)
	if vector, ok := e.cache.get(key); ok {
		return vector, true
	}

	if e.store != nil {
		vector, err := e.store.GetEmbedding(ctx, key)
		switch {
		case err == nil && len(vector) > 0:
			e.cache.set(key, vector)
			return vector, true
		case err != nil && !errors.Is(err, common.ErrNotFound):
			e.logger.DebugContext(ctx, "embedding store lookup failed", "error", err)
		}
	}

	vector, err := e.breaker.Execute(func() ([]float64, error) {
		v, err := e.embedder.Embed(ctx, text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("%w: %w", errCallerDone, ctxErr)
			}
			return nil, err
		}
		if len(v) == 0 {
			return nil, errEmptyVector
		}
		return v, nil
	})
	if err != nil {
		e.fail(ctx, err)
		return nil, false
	}

	e.cache.set(key, vector)
	if e.store != nil {
		if err := e.store.SaveEmbedding(ctx, key, e.model, vector); err != nil {
			e.logger.WarnContext(ctx, "failed to persist embedding", "error", err)
		}
	}

	return vector, true
}

// Similarities scores each text against query, embedding at most workers texts
// at a time. It returns false, and no scores, when the query itself could not be
// embedded. Texts that fail to embed score 0.
func (e *Engine) Similarities(ctx context.Context, query string, texts []string, workers int) ([]float64, bool) {
	queryVector, ok := e.Embed(ctx, query)
	if !ok {
		return nil, false
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	scores := make([]float64, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			vector, ok := e.Embed(gctx, text)
			if ok {
				scores[i] = CosineSimilarity(queryVector, vector)
			}
			return nil
		})
	}
	_ = g.Wait()

	return scores, true
}

func (e *Engine) fail(ctx context.Context, err error) {
	reason := ReasonProvider
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		reason = ReasonBreakerOpen
	case errors.Is(err, errEmptyVector):
		reason = ReasonEmpty
	case errors.Is(err, errCallerDone):
		reason = ReasonCallerDone
	}

	e.logger.DebugContext(ctx, "embedding unavailable", "reason", reason, "error", err)
	if e.onFailure != nil {
		e.onFailure(reason)
	}
}

// CacheKey identifies text embedded by model. Changing either yields a new key.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
