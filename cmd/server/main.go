// Package main implements the micropost API server.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	app "github.com/micropost/micropost/internal/app"
	"github.com/micropost/micropost/internal/app/httpapi"
	"github.com/micropost/micropost/internal/app/storage/postgres"
	"github.com/micropost/micropost/internal/config"
	"github.com/micropost/micropost/internal/database"
	"github.com/micropost/micropost/internal/metrics"
	"github.com/micropost/micropost/internal/middleware"
	"github.com/micropost/micropost/internal/platform/migrations"
	"github.com/micropost/micropost/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default config/server.yaml)")
	addr := flag.String("addr", "", "Listen address override")
	dsn := flag.String("dsn", "", "PostgreSQL DSN override")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.LoadFromPath(*configPath)
		if err != nil {
			logger.NewDefault("server").WithError(err).Errorf("load config %s", *configPath)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	// Environment variable overrides
	if v := os.Getenv("MICROPOST_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dsn != "" {
		cfg.DatabaseURL = *dsn
	}

	log := logger.New("server", cfg.LogLevel)
	log.Infof("starting micropost server on %s", cfg.Addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stores app.Stores
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Errorf("connect to database")
			os.Exit(1)
		}
		defer db.Close()

		if err := migrations.Apply(ctx, db); err != nil {
			log.WithError(err).Errorf("apply migrations")
			os.Exit(1)
		}

		store := postgres.New(db)
		stores = app.Stores{Accounts: store, Messages: store}
		log.Info("using postgres store")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory store")
	}

	application := app.New(stores, log)

	m := metrics.New("micropost")

	// Middleware goes on the API router itself so the metrics path label
	// carries the matched route template rather than the mount point.
	api := httpapi.NewHandler(application, log)
	api.Use(middleware.TracingMiddleware(log), middleware.MetricsMiddleware(m))

	root := mux.NewRouter()
	root.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	root.PathPrefix("/").Handler(api)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Errorf("server error")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Errorf("shutdown")
	}
}
