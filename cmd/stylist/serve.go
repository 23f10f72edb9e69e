package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/stylist/internal/certs"
	"github.com/Veraticus/stylist/internal/config"
	"github.com/Veraticus/stylist/internal/metrics"
	"github.com/Veraticus/stylist/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation API",
		Long: `Start the HTTP API used by the storefront:

  POST /api/recommendations          recommend products for a shopper
  GET  /api/recommendations/history  recent recommendations for a shop
  GET  /healthz                      liveness
  GET  /metrics                      Prometheus metrics`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	recorder := metrics.NewRecorder()

	p, err := buildPipeline(ctx, recorder)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	defer p.Close()

	var tlsConfig *tls.Config
	if viper.GetBool("server.tls") {
		tlsConfig, err = certs.NewFileManager(config.ExpandPath(viper.GetString("server.cert_dir"))).TLSConfig()
		if err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
	}

	srv := server.New(server.Config{
		Logger:         slog.Default(),
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		TLS:            tlsConfig,
		Addr:           viper.GetString("server.addr"),
		AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		RequestTimeout: viper.GetDuration("server.request_timeout"),
		Release:        viper.GetString("logging.level") != "debug",
	}, server.NewHandler(p.recommender, p.store, version))

	return srv.Run(ctx)
}
