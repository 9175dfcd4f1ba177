package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hr-interviews-go/internal/app"
	"hr-interviews-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	log.Info("app: starting hr-interviews api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Critical("app: stopped with errors", "err", err)
		stop()
		os.Exit(1)
	}
	log.Info("app: stopped")
}
