package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	employeedomain "hr-interviews-go/internal/domain/employee"
)

func TestEmployeeCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewEmployeeCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	details := &employeedomain.EmployeeWithInterviews{
		Employee:   employeedomain.Employee{ID: "e1", FirstName: "John"},
		Interviews: []employeedomain.InterviewSummary{{ID: "i1", Position: "QA"}},
	}
	require.True(t, cache.Set(ctx, "e1", cache.Generation(ctx, "e1"), details, time.Minute))

	got, ok := cache.Get(ctx, "e1")
	require.True(t, ok)
	assert.Equal(t, "John", got.FirstName)

	got.Interviews[0].Position = "mutated"
	again, ok := cache.Get(ctx, "e1")
	require.True(t, ok)
	assert.Equal(t, "QA", again.Interviews[0].Position)

	now = now.Add(time.Minute)
	_, ok = cache.Get(ctx, "e1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestEmployeeCacheDeleteAndZeroTTL(t *testing.T) {
	ctx := context.Background()
	cache := NewEmployeeCache()
	details := &employeedomain.EmployeeWithInterviews{Employee: employeedomain.Employee{ID: "e1"}}

	cache.Set(ctx, "e1", cache.Generation(ctx, "e1"), details, time.Minute)
	cache.Delete(ctx, "e1")
	_, ok := cache.Get(ctx, "e1")
	assert.False(t, ok)

	cache.Set(ctx, "e1", cache.Generation(ctx, "e1"), details, time.Minute)
	assert.False(t, cache.Set(ctx, "e1", cache.Generation(ctx, "e1"), details, 0))
	_, ok = cache.Get(ctx, "e1")
	assert.False(t, ok)
}

func TestEmployeeCacheRejectsLoadOlderThanDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewEmployeeCache()
	details := &employeedomain.EmployeeWithInterviews{Employee: employeedomain.Employee{ID: "e1"}}

	generation := cache.Generation(ctx, "e1")
	cache.Delete(ctx, "e1")

	assert.False(t, cache.Set(ctx, "e1", generation, details, time.Minute))
	_, ok := cache.Get(ctx, "e1")
	assert.False(t, ok)

	// Other ids are unaffected by the delete.
	assert.True(t, cache.Set(ctx, "e2", generation, details, time.Minute))

	assert.True(t, cache.Set(ctx, "e1", cache.Generation(ctx, "e1"), details, time.Minute))
	_, ok = cache.Get(ctx, "e1")
	assert.True(t, ok)
}

func TestEmployeeCachePrunesOldInvalidations(t *testing.T) {
	ctx := context.Background()
	cache := NewEmployeeCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Delete(ctx, "old")
	now = now.Add(invalidationRetention + time.Second)
	for i := 0; i < 127; i++ {
		cache.Delete(ctx, "recent")
	}

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	assert.NotContains(t, cache.invalidated, "old")
	assert.Contains(t, cache.invalidated, "recent")
}
