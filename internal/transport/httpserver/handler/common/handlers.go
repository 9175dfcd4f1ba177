package common

import (
	"context"

	"hr-interviews-go/pkg/logger"
)

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	db  Pinger
	log logger.Logger
}

func New(db Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		db:  db,
		log: log,
	}
}
