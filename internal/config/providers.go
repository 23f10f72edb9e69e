package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/stylist/internal/catalog"
	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/llm"
	"github.com/Veraticus/stylist/internal/service"
)

// GeneratorConfig builds the text generation client config from the llm.* keys.
// API keys fall back to OPENAI_API_KEY / ANTHROPIC_API_KEY.
func GeneratorConfig(v *viper.Viper) (llm.Config, error) {
	cfg := llm.Config{
		Provider:       strings.ToLower(v.GetString("llm.provider")),
		Model:          v.GetString("llm.model"),
		BaseURL:        v.GetString("llm.base_url"),
		Temperature:    v.GetFloat64("llm.temperature"),
		MaxTokens:      v.GetInt("llm.max_tokens"),
		MaxRetries:     v.GetInt("llm.max_retries"),
		RetryDelay:     v.GetDuration("llm.retry_delay"),
		RateLimit:      v.GetInt("llm.rate_limit"),
		ClaudeCodePath: v.GetString("llm.claude_code_path"),
	}

	switch cfg.Provider {
	case "openai":
		cfg.APIKey = apiKey(v, "llm.openai_api_key", "OPENAI_API_KEY")
	case "anthropic":
		cfg.APIKey = apiKey(v, "llm.anthropic_api_key", "ANTHROPIC_API_KEY")
	case "claudecode":
		return cfg, nil
	default:
		return cfg, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("%w: %s API key", common.ErrMissingConfig, cfg.Provider)
	}
	return cfg, nil
}

// EmbedderConfig builds the embedding client config. It shares retry and rate
// limits with the generator but uses embedding.model.
func EmbedderConfig(v *viper.Viper) (llm.Config, error) {
	cfg := llm.Config{
		Provider:   strings.ToLower(v.GetString("embedding.provider")),
		Model:      v.GetString("embedding.model"),
		BaseURL:    v.GetString("embedding.base_url"),
		MaxRetries: v.GetInt("llm.max_retries"),
		RetryDelay: v.GetDuration("llm.retry_delay"),
		RateLimit:  v.GetInt("llm.rate_limit"),
	}
	if cfg.Provider != "openai" {
		return cfg, fmt.Errorf("%w: unsupported embedding provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	cfg.APIKey = apiKey(v, "llm.openai_api_key", "OPENAI_API_KEY")
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("%w: openai API key for embeddings", common.ErrMissingConfig)
	}
	return cfg, nil
}

// CatalogSource returns the configured product source.
func CatalogSource(v *viper.Viper, logger *slog.Logger) (catalog.Source, error) {
	switch source := strings.ToLower(v.GetString("catalog.source")); source {
	case "file", "":
		path := ExpandPath(v.GetString("catalog.path"))
		if path == "" {
			return nil, fmt.Errorf("%w: catalog.path", common.ErrMissingConfig)
		}
		return catalog.NewFileSource(path, logger), nil
	case "shopify":
		src, err := catalog.NewShopifySource(catalog.ShopifyConfig{
			Logger:     logger,
			Domain:     v.GetString("catalog.shopify_domain"),
			Token:      v.GetString("catalog.shopify_token"),
			APIVersion: v.GetString("catalog.api_version"),
			Retry: service.RetryOptions{
				MaxAttempts:  v.GetInt("llm.max_retries"),
				InitialDelay: v.GetDuration("llm.retry_delay"),
				MaxDelay:     30 * time.Second,
				Multiplier:   2.0,
			},
		})
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: unsupported catalog source %q", common.ErrInvalidConfig, source)
	}
}

func apiKey(v *viper.Viper, key, env string) string {
	if k := v.GetString(key); k != "" {
		return k
	}
	return os.Getenv(env)
}
