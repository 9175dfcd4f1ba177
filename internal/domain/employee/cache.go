package employee

import (
	"context"
	"time"
)

// Cache holds employee detail reads keyed by employee id.
//
// Readers take a Generation before loading from the store and hand it back to
// Set. Set refuses the value when Delete ran for the id in between, so a load
// that raced with a write never outlives the invalidation.
type Cache interface {
	Get(ctx context.Context, id string) (*EmployeeWithInterviews, bool)
	Generation(ctx context.Context, id string) uint64
	Set(ctx context.Context, id string, generation uint64, value *EmployeeWithInterviews, ttl time.Duration) bool
	Delete(ctx context.Context, id string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*EmployeeWithInterviews, bool) {
	return nil, false
}

func (noopCache) Generation(context.Context, string) uint64 { return 0 }

func (noopCache) Set(context.Context, string, uint64, *EmployeeWithInterviews, time.Duration) bool {
	return false
}

func (noopCache) Delete(context.Context, string) {}
