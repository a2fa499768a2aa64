package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"influence-hub/db/migrations"
	"influence-hub/internal/config/configs"
)

// NewPostgresPool opens the campaign store pool and pings it within
// cfg.PingTimeout. The pool is closed again when the ping fails.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, fmt.Errorf("parse postgres address: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConf.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// CheckSchema fails unless the schema recorded by golang-migrate is clean
// and exactly at migrations.Version. It guards serve when migrations are
// not run on startup.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool) error {
	var (
		version int64
		dirty   bool
	)
	err := pool.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("campaign schema is not migrated; run the migrate command")
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if err = checkSchema(uint(version), dirty); err != nil {
		return err
	}
	if uint(version) != migrations.Version {
		return fmt.Errorf("schema version %d is behind this build (%d); run the migrate command", version, migrations.Version)
	}
	return nil
}
