// Package main is the entry point for the LandingPress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landingpress/internal/cache"
	"landingpress/internal/config"
	"landingpress/internal/database"
	"landingpress/internal/extract"
	"landingpress/internal/handlers"
	"landingpress/internal/render"
	"landingpress/internal/router"
	"landingpress/internal/session"
	"landingpress/internal/storage"
	"landingpress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey backs both sessions and the rendered-page cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	tenantStore := store.NewTenantStore(db)
	userStore := store.NewUserStore(db)
	landingStore := store.NewLandingStore(db)
	policyStore := store.NewPolicyStore(db)
	leadStore := store.NewLeadStore(db)
	sequenceStore := store.NewSequenceStore(db)
	knowledgeStore := store.NewKnowledgeStore(db)
	mediaStore := store.NewMediaStore(db)

	// S3-compatible object storage (optional — media uploads disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
		)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Document extraction service (optional — knowledge ingestion disabled
	// without it).
	var extractor extract.Extractor
	if cfg.ExtractorURL != "" {
		extractor = extract.NewClient(cfg.ExtractorURL, cfg.ExtractorKey)
		slog.Info("extraction service configured", "url", cfg.ExtractorURL)
	} else {
		slog.Warn("extraction service not configured — knowledge ingestion disabled")
	}

	r := router.New(sessionStore, secureCookies, router.Handlers{
		Auth:      handlers.NewAuth(sessionStore, userStore),
		Landing:   handlers.NewLanding(landingStore, tenantStore, pageCache),
		Media:     handlers.NewMedia(mediaStore, storageClient),
		Policies:  handlers.NewPolicies(policyStore, tenantStore, pageCache),
		CRM:       handlers.NewCRM(leadStore, sequenceStore),
		Knowledge: handlers.NewKnowledge(knowledgeStore, extractor),
		Public:    handlers.NewPublic(tenantStore, landingStore, policyStore, leadStore, renderer, pageCache),
	})

	// WriteTimeout accommodates media uploads and the extraction service,
	// which can take tens of seconds on large documents.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
