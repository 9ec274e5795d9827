package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recruitment-metrics-service/internal/metrics/adapters/mcpserver"
)

func mcpCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the metric tools over MCP stdio",
		Long: `Runs an MCP server on stdin/stdout exposing list_metrics, get_metric_details,
query_metric and the lookup tools. Logs go to stderr.`,
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

			return mcpserver.New(a.getMetrics, a.catalog, a.lookups, version, logger).Run(ctx)
		},
	}
}
