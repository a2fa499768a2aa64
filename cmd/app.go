package main

import (
	"context"
	"log/slog"

	"influence-hub/internal/adapter/memory"
	"influence-hub/internal/adapter/notify"
	"influence-hub/internal/adapter/postgres"
	"influence-hub/internal/adapter/usecase"
	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
	"influence-hub/internal/db"
	"influence-hub/internal/metrics"
)

// app is the wired service graph for the configured storage driver.
type app struct {
	lifecycle *usecase.Lifecycle
	profiles  port.ProfileDirectory
	metrics   *metrics.Recorder
	close     func()
}

func newApp(ctx context.Context, e *env) (*app, error) {
	var (
		repo     port.CampaignRepository
		profiles port.ProfileDirectory
		notifier port.Notifier = notify.NewLog(e.logger)
		closeFn              = func() {}
	)
	if e.cfg.Storage.UseMemory() {
		e.logger.Warn("using in-memory storage; data is lost on exit")
		repo = memory.NewCampaignRepository()
		profiles = memory.NewProfileDirectory()
	} else {
		if e.cfg.Psql.RunMigrations {
			if err := db.Migrate(e.cfg.Psql.Addr.String(), e.logger); err != nil {
				e.logger.Error("migration error", slog.Any("error", err))
				return nil, err
			}
		}
		pool, err := db.NewPostgresPool(ctx, e.cfg.Psql)
		if err != nil {
			e.logger.Error("database connection error", slog.Any("error", err))
			return nil, err
		}
		if err = db.CheckSchema(ctx, pool); err != nil {
			pool.Close()
			e.logger.Error("schema check error", slog.Any("error", err))
			return nil, err
		}
		repo = postgres.NewCampaignRepository(pool)
		profiles = postgres.NewProfileDirectory(pool)
		notifier = notify.Fanout{postgres.NewNotificationStore(pool), notifier}
		closeFn = pool.Close
	}

	rec := metrics.NewRecorder()
	lc := usecase.NewLifecycle(repo, profiles, notifier, e.logger,
		usecase.WithPricing(domain.Pricing{
			VATRate:            e.cfg.Pricing.VATRate,
			PlatformFeePercent: e.cfg.Pricing.PlatformFeePercent,
		}),
		usecase.WithOfferTTL(e.cfg.Pricing.OfferTTL),
		usecase.WithObserver(rec),
	)
	return &app{lifecycle: lc, profiles: profiles, metrics: rec, close: closeFn}, nil
}

func (a *app) seed(ctx context.Context, logger *slog.Logger) error {
	demo, err := db.Seed(ctx, a.profiles, usecase.NewClientService(a.lifecycle), usecase.NewAdminService(a.lifecycle))
	if err != nil {
		return err
	}
	logger.Info("demo data seeded",
		slog.String("campaign_id", demo.CampaignID.String()),
		slog.String("client_user_id", demo.Client.UserID.String()),
		slog.String("admin_user_id", demo.Admin.UserID.String()),
		slog.String("agency_user_id", demo.Agency.UserID.String()),
	)
	return nil
}
