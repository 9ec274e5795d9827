// @title Recruitment Metrics API
// @version 1.0
// @description Computes recruitment metrics (funnels, breakdowns, trends) from Recruitee candidate events.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "recruitment-metrics-service/docs"
)

const version = "1.0.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "recruitment-metrics",
		Short: "Recruitment metric query engine",
		Long: `Answers recruitment questions (how many candidates, proceed rates per stage,
time to hire, ...) from Recruitee data.

Requests are validated against a static metric catalog, filters are resolved
to ids, candidate events are aggregated in memory and the result is shaped
for a table or chart.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(serveCmd(&configPath))
	cmd.AddCommand(mcpCmd(&configPath))
	cmd.AddCommand(catalogCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recruitment-metrics version %s\n", version)
		},
	})
	return cmd
}
