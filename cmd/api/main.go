// Package main is the entry point for the Waypoint API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pkordes/waypoint/internal/config"
	"github.com/pkordes/waypoint/internal/handler"
	"github.com/pkordes/waypoint/internal/logger"
	"github.com/pkordes/waypoint/internal/middleware"
	"github.com/pkordes/waypoint/internal/places"
	"github.com/pkordes/waypoint/internal/repo"
	"github.com/pkordes/waypoint/internal/service"
	"github.com/pkordes/waypoint/migrations"
)

func main() {
	// Plain stderr logger until the configured one exists.
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("configuration error")
	}

	// --- Logger -----------------------------------------------------------
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("logger setup failed")
	}

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(context.Background(), sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Int("applied", n).Msg("migrations applied")
	}

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)

	gateway := places.New(places.Config{
		BaseURL:     cfg.PlacesBaseURL,
		APIKey:      cfg.PlacesAPIKey,
		Timeout:     cfg.PlacesTimeout,
		MaxAttempts: cfg.PlacesMaxAttempts,
	}, log)
	if cfg.PlacesAPIKey == "" {
		log.Warn().Msg("PLACES_API_KEY is not set; place search calls will be rejected upstream")
	}

	srv := handler.NewServer(handler.Deps{
		Trips:      service.NewTripService(tripRepo),
		Activities: service.NewActivityService(tripRepo, activityRepo),
		Itinerary:  service.NewItineraryService(tripRepo, activityRepo),
		Places:     gateway,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RequestLogger writes one structured line per request and puts a
	// request-scoped logger in the context.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	srv.Register(r)

	// --- HTTP Server ------------------------------------------------------
	// The write timeout leaves room for a place search that uses its full
	// per-attempt timeout.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.PlacesTimeout*time.Duration(cfg.PlacesMaxAttempts) + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("server starting")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
