// Command preview renders the dashboard once, fetching the oracle views from a web4 gateway
// the same way the web4 host does, and writes the page to a file or stdout.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/config"
	"github.com/tropicaldog17/oraclewatch/internal/db"
	"github.com/tropicaldog17/oraclewatch/internal/logger"
	"github.com/tropicaldog17/oraclewatch/internal/repositories"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

func main() {
	path := flag.String("path", "/", "web4 request path")
	out := flag.String("out", "", "output file (default stdout)")
	gateway := flag.String("gateway", "", "web4 gateway base URL (default WEB4_GATEWAY_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *gateway == "" {
		*gateway = cfg.Oracle.GatewayURL
	}

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	registry := services.NewRegistryService(repositories.NewTokenConfigRepository(database), log)
	dashboard := services.NewDashboardService(registry, services.NewFeedParser(), cfg.Oracle.AccountID,
		services.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := services.RenderWithFetcher(ctx, dashboard, services.NewHTTPPreloadFetcher(*gateway), *path)
	if err != nil {
		log.Fatal("Render failed", zap.String("gateway", *gateway), zap.String("path", *path), zap.Error(err))
	}

	if *out == "" {
		_, err = os.Stdout.Write(resp.Body)
	} else {
		err = os.WriteFile(*out, resp.Body, 0o644)
	}
	if err != nil {
		log.Fatal("Failed to write page", zap.Error(err))
	}
	log.Info("Dashboard rendered", zap.String("path", *path), zap.Int("bytes", len(resp.Body)))
}
