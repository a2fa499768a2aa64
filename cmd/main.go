package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"influence-hub/internal/config"
)

// env carries what every subcommand needs after the root command ran.
type env struct {
	cfg    config.Config
	logger *slog.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "influence-hub",
		Short:         "Influencer campaign lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", slog.Any("error", err))
				return err
			}
			e.cfg = cfg
			e.logger = cfg.Log.NewSlog(os.Stdout, slog.String("env", cfg.Env))
			return nil
		},
	}
	root.AddCommand(newServeCmd(e), newMigrateCmd(e), newSeedCmd(e))
	return root
}
