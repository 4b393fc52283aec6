package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sanscolte/twitter/internal/auth"
	"github.com/sanscolte/twitter/internal/config"
	"github.com/sanscolte/twitter/internal/handler"
	"github.com/sanscolte/twitter/internal/middleware"
	"github.com/sanscolte/twitter/internal/monitoring"
	"github.com/sanscolte/twitter/internal/repository"
)

func main() {
	cfg := config.Init()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	if err := applySchema(ctx, pool, cfg.SchemaPath); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	store := repository.NewPostgres(pool)
	h := handler.New(store, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(monitoring.InstrumentHandler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", auth.HeaderAPIKey},
	}))

	r.Use(auth.Gate(store, logger))

	r.Mount("/api", h.Routes())
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("server starting", zap.String("addr", cfg.ServerAddr))
	if err := http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// applySchema bootstraps the relational schema; the DDL is idempotent.
func applySchema(ctx context.Context, pool *pgxpool.Pool, path string) error {
	schema, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, string(schema))
	return err
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
