package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	metricsHttp "recruitment-metrics-service/internal/metrics/adapters/http/fiber"
	querylogHttp "recruitment-metrics-service/internal/querylog/adapters/http/fiber"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			// HTTP (Fiber) app + handlers
			app := fiber.New(fiber.Config{DisableStartupMessage: true})
			app.Use(recover.New())
			app.Use(requestid.New())

			// metrics endpoints
			metricsHandler := metricsHttp.NewMetricsHandler(a.getMetrics, a.catalog, a.lookups)
			app.Get("/metrics", metricsHandler.GetMetrics)
			app.Get("/metrics/catalog", metricsHandler.ListMetrics)
			app.Get("/metrics/catalog/:metric", metricsHandler.GetMetricDetails)

			// lookup endpoints
			app.Get("/offers", metricsHandler.ListOffers)
			app.Get("/offers/:id/stages", metricsHandler.OfferStages)
			app.Get("/tags", metricsHandler.ListTags)
			app.Get("/disqualify-reasons", metricsHandler.ListDisqualifyReasons)
			app.Get("/offers/:id", metricsHandler.OfferDetails)
			app.Get("/talent-pools", metricsHandler.ListTalentPools)
			app.Get("/talent-pools/:id", metricsHandler.TalentPoolDetails)
			app.Get("/candidates", metricsHandler.SearchCandidates)
			app.Get("/candidates/search", metricsHandler.SearchCandidatesByQuery)
			app.Get("/candidates/details", metricsHandler.CandidateDetails)
			app.Get("/candidates/fields", metricsHandler.CandidateFields)
			app.Get("/candidates/:id/notes", metricsHandler.CandidateNotes)

			// query log
			if a.queryLog != nil {
				queryLogHandler := querylogHttp.NewQueryLogHandler(a.queryLog)
				app.Get("/queries", queryLogHandler.ListQueries)
			}

			// upstream telemetry
			app.Get("/telemetry", adaptor.HTTPHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

			// Swagger
			app.Get("/docs/*", fiberSwagger.WrapHandler)

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Listen(cfg.HTTP.Addr)
			}()
			logger.Info("server started", "addr", cfg.HTTP.Addr, "version", version)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				logger.Error("fiber shutdown error", "error", err)
			}
			logger.Info("server exiting")
			return nil
		},
	}
}
