package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "influence-hub/internal/adapter/http"
	"influence-hub/internal/adapter/usecase"
)

func newServeCmd(e *env) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, e)
			if err != nil {
				return err
			}
			defer a.close()
			if seed {
				if err = a.seed(ctx, e.logger); err != nil {
					e.logger.Error("seed error", slog.Any("error", err))
					return err
				}
			}

			handler := httpadapter.NewHandler(httpadapter.Services{
				Client:     usecase.NewClientService(a.lifecycle),
				Admin:      usecase.NewAdminService(a.lifecycle),
				Agency:     usecase.NewAgencyService(a.lifecycle),
				Influencer: usecase.NewInfluencerService(a.lifecycle),
			}, e.logger, httpadapter.WithMetrics(a.metrics))
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", e.cfg.HTTP.Port),
				Handler:           handler.Router(),
				ReadHeaderTimeout: e.cfg.HTTP.ReadHeaderTimeout,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				e.logger.Info("server listening", slog.Int("port", int(e.cfg.HTTP.Port)))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.HTTP.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					e.logger.Error("server shutdown error", slog.Any("error", err))
					return err
				}
				e.logger.Info("server gracefully stopped")
				return nil
			})
			if err = g.Wait(); err != nil {
				e.logger.Error("server error", slog.Any("error", err))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "seed demo data before serving")
	return cmd
}
