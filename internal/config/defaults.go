package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is where history and embeddings live unless configured.
const DefaultDatabasePath = "~/.local/share/stylist/stylist.db"

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", "~/.config/stylist/certs")

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "catalog")
	v.SetDefault("catalog.api_version", "2024-10")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", time.Second)
	v.SetDefault("llm.rate_limit", 60)

	v.SetDefault("embedding.provider", "openai")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.workers", 8)
	v.SetDefault("embedding.cache_ttl", time.Hour)
	v.SetDefault("embedding.persist", true)
	v.SetDefault("embedding.breaker_failures", 5)
	v.SetDefault("embedding.breaker_timeout", 30*time.Second)

	v.SetDefault("recommend.max_results", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
