package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"recruitment-metrics-service/internal/config"
	"recruitment-metrics-service/internal/logging"
	"recruitment-metrics-service/internal/metrics/adapters/recruitee"
	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/ports"
	metricsUsecase "recruitment-metrics-service/internal/metrics/core/usecase"
	querylogRepoPg "recruitment-metrics-service/internal/querylog/adapters/postgres"
	querylogUsecase "recruitment-metrics-service/internal/querylog/core/usecase"
)

// app holds the wired use cases shared by serve and mcp.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	catalog    *metricsUsecase.CatalogUseCase
	lookups    *metricsUsecase.LookupUseCase
	getMetrics *metricsUsecase.GetMetricsUseCase
	queryLog   *querylogUsecase.RecordQueryUseCase // nil without postgres

	db *sql.DB
}

func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	// stdout belongs to the MCP transport
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	cat, err := catalog.Embedded()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	client, err := recruitee.New(recruitee.Config{
		BaseURL:           cfg.Recruitee.BaseURL,
		CompanyID:         cfg.Recruitee.CompanyID,
		APIToken:          cfg.Recruitee.APIToken,
		Timeout:           cfg.Recruitee.Timeout,
		RequestsPerSecond: cfg.Recruitee.RequestsPerSecond,
		Burst:             cfg.Recruitee.Burst,
		MaxWait:           cfg.Recruitee.MaxWait,
		MaxAttempts:       cfg.Recruitee.MaxAttempts,
		BackoffInitial:    cfg.Recruitee.BackoffInitial,
		BackoffMax:        cfg.Recruitee.BackoffMax,
		PageSize:          cfg.Recruitee.PageSize,
		LookupTTL:         cfg.Recruitee.LookupTTL,
	},
		recruitee.WithLogger(logger),
		recruitee.WithTelemetry(recruitee.NewTelemetry(registry)),
	)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, registry: registry}

	var recorder ports.QueryRecorder
	if cfg.Postgres.DSN != "" {
		db, err := openPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		repo := querylogRepoPg.NewQueryRecordRepository(querylogRepoPg.NewQueryLogDB(db, cfg.Postgres.StatementTimeout))
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		a.queryLog = querylogUsecase.NewRecordQueryUseCase(repo)
		recorder = a.queryLog
	} else {
		logger.Info("postgres.dsn not set, query log disabled")
	}

	a.catalog = metricsUsecase.NewCatalogUseCase(cat)
	a.lookups = metricsUsecase.NewLookupUseCase(client, client)
	a.getMetrics = metricsUsecase.NewGetMetricsUseCase(
		metricsUsecase.NewNormalizer(cat, client, nil),
		metricsUsecase.NewAggregator(cat, client, logger, metricsUsecase.AggregatorConfig{
			FetchConcurrency: cfg.Recruitee.FetchConcurrency,
		}),
		metricsUsecase.NewFormatter(),
		recorder,
		logger,
	)
	return a, nil
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
