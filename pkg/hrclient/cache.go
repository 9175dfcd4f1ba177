package hrclient

import "sync"

const (
	kindEmployee           = "employee"
	kindEmployeeInterviews = "employee-interviews"
	kindInterviews         = "interviews"
	allInterviewsKey       = "*"
)

type cacheKey struct {
	kind string
	id   string
}

// Cache holds API responses keyed by entity kind and id. Writes and
// invalidations take effect before the mutating call returns.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]interface{}
}

func NewCache() *Cache {
	return &Cache{items: make(map[cacheKey]interface{})}
}

func (c *Cache) get(kind, id string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.items[cacheKey{kind: kind, id: id}]
	return value, ok
}

func (c *Cache) set(kind, id string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey{kind: kind, id: id}] = value
}

func (c *Cache) delete(kind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, cacheKey{kind: kind, id: id})
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[cacheKey]interface{})
}

// InvalidateEmployee drops everything derived from one employee.
func (c *Cache) InvalidateEmployee(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, cacheKey{kind: kindEmployee, id: id})
	delete(c.items, cacheKey{kind: kindEmployeeInterviews, id: id})
	delete(c.items, cacheKey{kind: kindInterviews, id: allInterviewsKey})
}

func cached[T any](c *Cache, kind, id string) (T, bool) {
	var zero T
	value, ok := c.get(kind, id)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}
