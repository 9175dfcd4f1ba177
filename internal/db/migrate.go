package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"hr-interviews-go/internal/config"
	"hr-interviews-go/migrations"
	"hr-interviews-go/pkg/logger"
)

// migrateScheme selects the golang-migrate pgx/v5 database driver.
const migrateScheme = "pgx5"

// NewMigrator builds a migrate instance over the embedded migrations. Callers
// must Close it.
func NewMigrator(cfg config.DBConfig) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	dbURL, err := cfg.MigrationURL(migrateScheme)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration.
func Migrate(cfg config.DBConfig, log logger.Logger) error {
	m, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer CloseMigrator(m, log)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("db: schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("db: migrations applied", "version", version, "dirty", dirty)
	return nil
}

func CloseMigrator(m *migrate.Migrate, log logger.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warn("db: close migration source failed", "err", srcErr)
	}
	if dbErr != nil {
		log.Warn("db: close migration database failed", "err", dbErr)
	}
}
