package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	metricsUsecase "recruitment-metrics-service/internal/metrics/core/usecase"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [metric...]",
		Short: "Print the metric catalog, or the full descriptors of the named metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Embedded()
			if err != nil {
				return err
			}
			uc := metricsUsecase.NewCatalogUseCase(cat)
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				ds, err := uc.DescribeMetrics(args...)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(ds); err != nil {
					return err
				}
				return enc.Close()
			}

			fmt.Fprintf(out, "catalog version %s\n\n", uc.Version())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METRIC\tSHAPE\tNAME")
			for _, m := range uc.ListMetrics() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Metric, m.Kind, m.Name)
			}
			return tw.Flush()
		},
	}
}
