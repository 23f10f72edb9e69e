package llm

import (
	"context"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/service"
)

type resilientGenerator struct {
	next    Generator
	limiter *rateLimiter
	retry   service.RetryOptions
}

func (g *resilientGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := common.WithRetry(ctx, func() error {
		if err := g.limiter.wait(ctx); err != nil {
			return err
		}
		out, err := g.next.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, g.retry)
	return text, err
}

type resilientEmbedder struct {
	next    Embedder
	limiter *rateLimiter
	retry   service.RetryOptions
}

func (e *resilientEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	var vector []float64
	err := common.WithRetry(ctx, func() error {
		if err := e.limiter.wait(ctx); err != nil {
			return err
		}
		out, err := e.next.Embed(ctx, text)
		if err != nil {
			return err
		}
		vector = out
		return nil
	}, e.retry)
	return vector, err
}
