// Package main is the entry point for the itinerary API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/itinerary-api/internal/config"
	"github.com/pkordes/itinerary-api/internal/handler"
	"github.com/pkordes/itinerary-api/internal/metrics"
	"github.com/pkordes/itinerary-api/internal/middleware"
	"github.com/pkordes/itinerary-api/internal/repo"
	"github.com/pkordes/itinerary-api/internal/service"
	"github.com/pkordes/itinerary-api/internal/storage"
	"github.com/pkordes/itinerary-api/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default stderr logger; ours is not configured yet.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger, logOut, err := newLogger(cfg.SlogLevel(), cfg.LogFile)
	if err != nil {
		slog.Error("failed to open log output", "error", err)
		os.Exit(1)
	}
	defer logOut.Close()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server exited", "error", err)
		logOut.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	poolCfg.MaxConns = cfg.DBMaxConns

	// NewWithConfig does not open connections immediately; the first query does.
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	slog.Info("database connection established", "max_conns", poolCfg.MaxConns)

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, sqlDB)
		sqlDB.Close()
		if err != nil {
			return err
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Object storage ---------------------------------------------------
	gcsClient, err := storage.NewClient(ctx, cfg.GCPServiceAccountJSON)
	if err != nil {
		return err
	}
	defer gcsClient.Close()
	bucket := storage.NewBucket(gcsClient, cfg.GCPBucketName)

	// --- Services ---------------------------------------------------------
	travellerRepo := repo.NewTravellerRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)

	m := metrics.New(metrics.WithRuntimeCollectors())

	srv := handler.NewServer(handler.Deps{
		Travellers:     service.NewTravellerService(travellerRepo),
		Itineraries:    service.NewItineraryService(travellerRepo, itineraryRepo),
		Avatars:        service.NewAvatarService(bucket, logger),
		DB:             pool,
		Metrics:        m,
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// --- Router -----------------------------------------------------------
	// Order: RequestID → RealIP → SlogLogger → Metrics → Recoverer → CORS → MaxBodySize.
	// Recoverer sits inside the logger and metrics so a panic is still
	// recorded as a 500.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for a signal or a listener failure, then give
	// in-flight requests up to 15 seconds to complete.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
