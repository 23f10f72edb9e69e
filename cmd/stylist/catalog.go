package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/stylist/internal/cli"
	"github.com/Veraticus/stylist/internal/config"
	"github.com/Veraticus/stylist/internal/embedding"
	"github.com/Veraticus/stylist/internal/engine"
	"github.com/Veraticus/stylist/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and prepare shop catalogs",
	}
	cmd.AddCommand(catalogWarmCmd())
	return cmd
}

func catalogWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Pre-compute embeddings for every in-stock product",
		Long: `Embed every in-stock catalog product and persist the vectors, so the first
recommendations for a shop do not pay for embedding the whole catalog.

Interrupting keeps the vectors computed so far; running again skips them.`,
		RunE: runCatalogWarm,
	}

	cmd.Flags().String("shop", "", "shop identifier (required)")
	cmd.Flags().Int("workers", 0, "concurrent embedding requests (default: embedding.workers)")
	_ = cmd.MarkFlagRequired("shop")

	return cmd
}

func runCatalogWarm(cmd *cobra.Command, _ []string) error {
	shopID, _ := cmd.Flags().GetString("shop")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = viper.GetInt("embedding.workers")
	}
	if workers <= 0 {
		workers = embedding.DefaultWorkers
	}

	out := cmd.OutOrStdout()
	interrupts := cli.NewInterruptHandler(out)
	ctx := interrupts.HandleInterrupts(cmd.Context(), true)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if !viper.GetBool("embedding.persist") {
		slog.Warn("embedding.persist is false; warmed vectors will not outlive this process")
	}

	embeddings := newEmbeddingEngine(store, engine.NopObserver{})
	if embeddings == nil {
		return fmt.Errorf("no embedding provider configured")
	}
	defer embeddings.Close()

	source, err := config.CatalogSource(viper.GetViper(), slog.Default())
	if err != nil {
		return err
	}
	items, err := source.Products(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	inStock := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.InStock() {
			inStock = append(inStock, item)
		}
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Warming %d products for %s", len(inStock), shopID)))

	bar := newWarmProgressBar(cmd, len(inStock))
	failed := warmEmbeddings(ctx, embeddings, inStock, workers, func() {
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	})

	if interrupts.WasInterrupted() {
		return nil
	}

	count, err := store.CountEmbeddings(ctx)
	if err != nil {
		return err
	}

	if failed > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d products could not be embedded", failed)))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d vectors stored", count)))
	return nil
}

type vectorEmbedder interface {
	Embed(ctx context.Context, text string) ([]float64, bool)
}

// warmEmbeddings embeds the projection of each item with bounded concurrency
// and returns how many failed. Failures do not stop the remaining items.
func warmEmbeddings(ctx context.Context, e vectorEmbedder, items []model.CatalogItem, workers int, progress func()) int {
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			if _, ok := e.Embed(gctx, embedding.Project(item)); !ok {
				failed.Add(1)
			}
			progress()
			return nil
		})
	}
	_ = g.Wait()

	return int(failed.Load())
}

func newWarmProgressBar(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	w := cmd.ErrOrStderr()
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[magenta][bold]Embedding catalog...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
