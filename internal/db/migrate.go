package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"influence-hub/db/migrations"
)

// Migrate moves the campaign schema at addr up to migrations.Version and
// logs the versions it moved between.
func Migrate(addr string, logger *slog.Logger) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return fmt.Errorf("connect migrator: %w", err)
	}
	defer mg.Close()

	from, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		from, err = 0, nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	// never migrate down: a newer schema belongs to a newer build
	if err = checkSchema(from, dirty); err != nil {
		return err
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema %d -> %d: %w", from, migrations.Version, err)
	}
	logger.Info("campaign schema ready",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("version", uint64(migrations.Version)),
		slog.Bool("changed", from != migrations.Version),
	)
	return nil
}

// checkSchema rejects stored schemas this build cannot migrate.
func checkSchema(version uint, dirty bool) error {
	switch {
	case dirty:
		return fmt.Errorf("schema version %d is dirty; fix it by hand and force the version", version)
	case version > migrations.Version:
		return fmt.Errorf("schema version %d is newer than this build (%d)", version, migrations.Version)
	}
	return nil
}
