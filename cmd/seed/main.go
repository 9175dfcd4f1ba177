package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hr-interviews-go/internal/config"
	"hr-interviews-go/internal/db"
	"hr-interviews-go/internal/seed"
	"hr-interviews-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Critical("seed: failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	fixtures, err := seed.Default()
	if err != nil {
		return err
	}

	gormDB, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	_, err = seed.Run(ctx, gormDB, fixtures, log)
	return err
}
