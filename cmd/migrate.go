package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"influence-hub/internal/db"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(*cobra.Command, []string) error {
			if err := db.Migrate(e.cfg.Psql.Addr.String(), e.logger); err != nil {
				e.logger.Error("migration error", slog.Any("error", err))
				return err
			}
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo profiles and a quoted campaign",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer a.close()
			if err = a.seed(cmd.Context(), e.logger); err != nil {
				e.logger.Error("seed error", slog.Any("error", err))
			}
			return err
		},
	}
}
