// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/stylist/internal/model"
)

// HistoryStore persists completed recommendations. The pipeline only appends;
// reads serve the "restore previous preferences" surface.
type HistoryStore interface {
	SaveRecommendation(ctx context.Context, record *model.RecommendationRecord) error
	GetRecentRecommendations(ctx context.Context, shopID string, limit int) ([]model.RecommendationRecord, error)
}

// EmbeddingStore memoizes embedding vectors by content key.
type EmbeddingStore interface {
	GetEmbedding(ctx context.Context, key string) ([]float64, error)
	SaveEmbedding(ctx context.Context, key, model string, vector []float64) error
}

// Storage is the full persistence layer.
type Storage interface {
	HistoryStore
	EmbeddingStore

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
