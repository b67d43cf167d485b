package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/config"
	"github.com/tropicaldog17/oraclewatch/internal/db"
	"github.com/tropicaldog17/oraclewatch/internal/handlers"
	"github.com/tropicaldog17/oraclewatch/internal/logger"
	"github.com/tropicaldog17/oraclewatch/internal/metrics"
	"github.com/tropicaldog17/oraclewatch/internal/middleware"
	"github.com/tropicaldog17/oraclewatch/internal/repositories"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
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

	// Database connection
	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	version, _ := database.CurrentVersion()
	log.Info("Database connection established",
		zap.String("driver", cfg.Database.Driver),
		zap.Int("schema_version", version))

	// Initialize services
	registry := services.NewRegistryService(repositories.NewTokenConfigRepository(database), log)
	if cfg.Registry.SeedFile != "" {
		if err := seedRegistry(registry, cfg.Registry.SeedFile, log); err != nil {
			log.Fatal("Failed to seed registry", zap.String("file", cfg.Registry.SeedFile), zap.Error(err))
		}
	}
	if cfg.Registry.AdminSecret == "" {
		log.Warn("ADMIN_SECRET is empty; registry writes over HTTP are disabled")
	}

	m := metrics.New()
	dashboard := services.NewDashboardService(
		registry,
		services.NewFeedParser(),
		cfg.Oracle.AccountID,
		services.WithLogger(log),
		services.WithObserver(m),
	)

	limiter := middleware.NewRateLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst, log)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(time.Minute, stopCleanup)

	// Setup HTTP server
	router := handlers.NewRouter(handlers.RouterDeps{
		Web4:        handlers.NewWeb4Handler(dashboard, log),
		Registry:    handlers.NewRegistryHandler(registry, cfg.Registry.AdminSecret, log),
		Health:      handlers.NewHealthHandler(database),
		Metrics:     m,
		RateLimiter: limiter,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("oracle", cfg.Oracle.AccountID),
			zap.Strings("preload_urls", dashboard.PreloadURLs()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			log.Error("Server failed", zap.Error(err))
		}
	}

	close(stopCleanup)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := multierr.Combine(srv.Shutdown(ctx), database.Close())
	if shutdownErr != nil {
		log.Error("Shutdown finished with errors", zap.Errors("errors", multierr.Errors(shutdownErr)))
		return
	}
	log.Info("Server stopped")
}

func seedRegistry(registry services.RegistryService, path string, log *zap.Logger) error {
	entries, err := services.LoadSeedFile(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := registry.PutMany(ctx, entries); err != nil {
		return err
	}
	log.Info("Registry seeded", zap.String("file", path), zap.Int("tokens", len(entries)))
	return nil
}
