package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"property-dashboard/services"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the dashboard report once and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportFormat != "json" && reportFormat != "table" {
			return fmt.Errorf("unknown format %q (want json or table)", reportFormat)
		}

		ctx := cmd.Context()
		source, err := openSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer source.Close()

		dashboard, err := newDashboard(cfg, source, logger)
		if err != nil {
			return err
		}

		res, err := dashboard.Run(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.NoData() {
			if reportFormat == "table" {
				fmt.Fprintln(out, res.Message)
				return nil
			}
			return writeIndented(out, map[string]string{"message": res.Message})
		}
		if reportFormat == "table" {
			services.PrintReport(out, res.Report)
			return nil
		}
		return writeIndented(out, res.Report)
	},
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "output format: json or table")
	rootCmd.AddCommand(reportCmd)
}
