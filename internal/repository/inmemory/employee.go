package inmemory

import (
	"context"
	"sync"
	"time"

	employeedomain "hr-interviews-go/internal/domain/employee"
)

// invalidationRetention bounds how long a Delete is remembered. It only needs
// to outlast the slowest in-flight load.
const invalidationRetention = 10 * time.Minute

// EmployeeCache is local to the process. Replicas sharing one database need the
// Redis cache instead, since a write on one replica cannot reach this map.
type EmployeeCache struct {
	mu          sync.RWMutex
	items       map[string]employeeItem
	seq         uint64
	invalidated map[string]invalidation
	now         func() time.Time
}

type employeeItem struct {
	value     employeedomain.EmployeeWithInterviews
	expiresAt time.Time
}

type invalidation struct {
	seq uint64
	at  time.Time
}

func NewEmployeeCache() *EmployeeCache {
	return &EmployeeCache{
		items:       make(map[string]employeeItem),
		invalidated: make(map[string]invalidation),
		now:         time.Now,
	}
}

func (c *EmployeeCache) Get(_ context.Context, id string) (*employeedomain.EmployeeWithInterviews, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[id]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, id)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneDetails(item.value), true
}

// Generation returns the global invalidation sequence. Any Delete for id after
// this call makes Set reject the generation.
func (c *EmployeeCache) Generation(_ context.Context, _ string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq
}

func (c *EmployeeCache) Set(ctx context.Context, id string, generation uint64, value *employeedomain.EmployeeWithInterviews, ttl time.Duration) bool {
	if value == nil || ttl <= 0 {
		c.Delete(ctx, id)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if inv, ok := c.invalidated[id]; ok && inv.seq > generation {
		return false
	}
	c.items[id] = employeeItem{
		value:     *cloneDetails(*value),
		expiresAt: c.now().Add(ttl),
	}
	return true
}

func (c *EmployeeCache) Delete(_ context.Context, id string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	delete(c.items, id)
	c.invalidated[id] = invalidation{seq: c.seq, at: now}
	if c.seq%128 == 0 {
		c.pruneInvalidations(now)
	}
}

func (c *EmployeeCache) pruneInvalidations(now time.Time) {
	for id, inv := range c.invalidated {
		if now.Sub(inv.at) > invalidationRetention {
			delete(c.invalidated, id)
		}
	}
}

func (c *EmployeeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// cloneDetails copies the interview slice so callers cannot mutate cached state.
func cloneDetails(value employeedomain.EmployeeWithInterviews) *employeedomain.EmployeeWithInterviews {
	interviews := make([]employeedomain.InterviewSummary, len(value.Interviews))
	copy(interviews, value.Interviews)
	value.Interviews = interviews
	return &value
}
