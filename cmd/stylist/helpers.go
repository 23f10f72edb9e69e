package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/stylist/internal/config"
	"github.com/Veraticus/stylist/internal/embedding"
	"github.com/Veraticus/stylist/internal/engine"
	"github.com/Veraticus/stylist/internal/llm"
	"github.com/Veraticus/stylist/internal/service"
	"github.com/Veraticus/stylist/internal/storage"
)

// initStorage opens the database with path expansion and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// pipeline bundles the collaborators one recommender needs so commands can
// release them together.
type pipeline struct {
	store       *storage.SQLiteStorage
	embeddings  *embedding.Engine
	recommender *engine.Recommender
}

func (p *pipeline) Close() {
	if p.embeddings != nil {
		p.embeddings.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}

// newEmbeddingEngine builds the memoizing embedding engine. It returns nil
// when no embedder is configured, which disables semantic ranking.
func newEmbeddingEngine(store service.EmbeddingStore, observer engine.Observer) *embedding.Engine {
	cfg, err := config.EmbedderConfig(viper.GetViper())
	if err != nil {
		slog.Warn("Semantic ranking disabled", "error", err)
		return nil
	}
	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		slog.Warn("Semantic ranking disabled", "error", err)
		return nil
	}

	var persistent service.EmbeddingStore
	if viper.GetBool("embedding.persist") && store != nil {
		persistent = store
	}

	return embedding.NewEngine(embedder, persistent, embedding.Config{
		Logger:          slog.Default(),
		OnFailure:       observer.EmbeddingFailed,
		Model:           cfg.Model,
		CacheTTL:        viper.GetDuration("embedding.cache_ttl"),
		BreakerTimeout:  viper.GetDuration("embedding.breaker_timeout"),
		BreakerFailures: uint32(max(viper.GetInt("embedding.breaker_failures"), 0)),
	})
}

// newGenerator returns the configured generator, or nil when none is usable.
// Recommendations still work without one.
func newGenerator() llm.Generator {
	cfg, err := config.GeneratorConfig(viper.GetViper())
	if err != nil {
		slog.Warn("Styling advice disabled", "error", err)
		return nil
	}
	gen, err := llm.NewGenerator(cfg)
	if err != nil {
		slog.Warn("Styling advice disabled", "error", err)
		return nil
	}
	return gen
}

// buildPipeline wires storage, catalog, embeddings and the generator into a recommender.
func buildPipeline(ctx context.Context, observer engine.Observer) (*pipeline, error) {
	if observer == nil {
		observer = engine.NopObserver{}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	p := &pipeline{store: store}

	source, err := config.CatalogSource(viper.GetViper(), slog.Default())
	if err != nil {
		p.Close()
		return nil, err
	}

	var similarity engine.Similarity
	if p.embeddings = newEmbeddingEngine(store, observer); p.embeddings != nil {
		similarity = p.embeddings
	}

	p.recommender = engine.NewWithConfig(
		source,
		engine.NewRanker(similarity, viper.GetInt("embedding.workers")),
		newGenerator(),
		store,
		engine.Config{
			Logger:     slog.Default(),
			Observer:   observer,
			MaxResults: viper.GetInt("recommend.max_results"),
		},
	)
	return p, nil
}
