package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"hr-interviews-go/internal/config"
	"hr-interviews-go/internal/db"
	"hr-interviews-go/pkg/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [up|down|drop|version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	log := logger.NewFromEnv()

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("migrate: load config failed", "err", err)
		os.Exit(1)
	}

	if err := runMigration(action, cfg.DB, log); err != nil {
		log.Critical("migrate: failed", "action", action, "err", err)
		os.Exit(1)
	}

	log.Info("migrate: completed", "action", action)
}

func runMigration(action string, cfg config.DBConfig, log logger.Logger) error {
	if action == "up" {
		return db.Migrate(cfg, log)
	}

	m, err := db.NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer db.CloseMigrator(m, log)

	switch action {
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info("migrate: no migration applied")
				return nil
			}
			return err
		}
		log.Info("migrate: current version", "version", version, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
