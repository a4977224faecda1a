package main

import (
	"github.com/spf13/cobra"

	"property-dashboard/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the listings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSQLSource(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer src.Close()

		if err := src.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Infof("[migrate] Table %s ready", cfg.Store.Table)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <listings.csv>",
	Short: "Load raw listings from a CSV export into the listings table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw, err := storage.NewCSVSource(args[0], logger).FetchAll(ctx)
		if err != nil {
			return err
		}

		src, err := openSQLSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer src.Close()

		if err := src.Migrate(ctx); err != nil {
			return err
		}
		if err := src.Insert(ctx, raw); err != nil {
			return err
		}
		logger.Infof("[import] Imported %d listings from %s into %s", len(raw), args[0], cfg.Store.Table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, importCmd)
}
