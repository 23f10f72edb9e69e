package server

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Config configures the HTTP surface.
type Config struct {
	Logger         *slog.Logger
	Metrics        HTTPObserver
	MetricsHandler http.Handler
	// TLS enables HTTPS when set.
	TLS            *tls.Config
	Addr           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Release        bool
}

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg Config, handler *Handler) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	if cfg.Metrics != nil {
		router.Use(MetricsMiddleware(cfg.Metrics))
	}
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", handler.HealthCheck)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := router.Group("/api")
	api.Use(TimeoutMiddleware(cfg.RequestTimeout))
	{
		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("", handler.Recommend)
			recommendations.GET("/history", handler.History)
		}
	}

	return router
}
