package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/stylist/internal/service"
)

// Config holds configuration for a provider client.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	ClaudeCodePath string
	MaxRetries     int
	RetryDelay     time.Duration
	Timeout        time.Duration
	RateLimit      int // requests per minute
	Temperature    float64
	MaxTokens      int
}

func (c Config) retryOptions() service.RetryOptions {
	opts := service.RetryOptions{
		MaxAttempts:  c.MaxRetries,
		InitialDelay: c.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay == 0 {
		opts.InitialDelay = time.Second
	}
	return opts
}

// NewGenerator creates a rate-limited, retrying text generator for cfg.Provider.
func NewGenerator(cfg Config) (Generator, error) {
	var (
		gen Generator
		err error
	)

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		gen, err = newOpenAIClient(cfg)
	case "anthropic":
		gen, err = newAnthropicClient(cfg)
	case "claudecode":
		gen, err = newClaudeCodeClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &resilientGenerator{
		next:    gen,
		limiter: newRateLimiter(cfg.RateLimit),
		retry:   cfg.retryOptions(),
	}, nil
}

// NewEmbedder creates a rate-limited, retrying embedder. Only OpenAI-compatible
// embedding endpoints are supported.
func NewEmbedder(cfg Config) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding client: %w", err)
		}
		return &resilientEmbedder{
			next:    client,
			limiter: newRateLimiter(cfg.RateLimit),
			retry:   cfg.retryOptions(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
