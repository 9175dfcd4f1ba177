package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	employeedomain "hr-interviews-go/internal/domain/employee"
	"hr-interviews-go/pkg/logger"
)

const (
	employeeKeyPrefix   = "hr:employee:"
	generationKeyPrefix = "hr:employee-gen:"

	// generationTTL only has to outlive the slowest in-flight detail load.
	generationTTL = 24 * time.Hour
)

// EmployeeCache stores employee details as JSON. When Redis cannot be reached
// every call is a miss and writes are dropped.
type EmployeeCache struct {
	client *goredis.Client
	log    logger.Logger

	warnedUnavailable atomic.Bool
}

func NewEmployeeCache(ctx context.Context, redisURL string, log logger.Logger) (*EmployeeCache, error) {
	options, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := goredis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("cache: redis unavailable, bypassing cache", "err", err)
		_ = client.Close()
		return &EmployeeCache{log: log}, nil
	}

	log.Info("cache: redis connected", "addr", options.Addr)
	return &EmployeeCache{client: client, log: log}, nil
}

func NewEmployeeCacheFromClient(client *goredis.Client, log logger.Logger) *EmployeeCache {
	return &EmployeeCache{client: client, log: log}
}

func (c *EmployeeCache) Available() bool {
	return c != nil && c.client != nil
}

func (c *EmployeeCache) Get(ctx context.Context, id string) (*employeedomain.EmployeeWithInterviews, bool) {
	if !c.Available() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, employeeKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.warnOnce(err)
		}
		return nil, false
	}

	var value employeedomain.EmployeeWithInterviews
	if err := json.Unmarshal(raw, &value); err != nil {
		c.log.Warn("cache: drop undecodable employee entry", "id", id, "err", err)
		c.Delete(ctx, id)
		return nil, false
	}
	return &value, true
}

// Generation reads the per-id invalidation counter. A missing counter is 0.
func (c *EmployeeCache) Generation(ctx context.Context, id string) uint64 {
	if !c.Available() {
		return 0
	}
	generation, err := c.client.Get(ctx, generationKey(id)).Uint64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		c.warnOnce(err)
	}
	return generation
}

// Set writes value only while the generation counter still equals generation.
// The counter is WATCHed, so a Delete landing between the check and the write
// aborts the transaction.
func (c *EmployeeCache) Set(ctx context.Context, id string, generation uint64, value *employeedomain.EmployeeWithInterviews, ttl time.Duration) bool {
	if !c.Available() {
		return false
	}
	if value == nil || ttl <= 0 {
		c.Delete(ctx, id)
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.InternalError("cache: encode employee failed", err, "id", id)
		return false
	}

	genKey := generationKey(id)
	stored := false
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, employeeKey(id), raw, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)
	if err != nil && !errors.Is(err, goredis.TxFailedErr) {
		c.warnOnce(err)
	}
	return stored
}

func (c *EmployeeCache) Delete(ctx context.Context, id string) {
	if !c.Available() {
		return
	}
	genKey := generationKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, employeeKey(id))
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		return nil
	})
	if err != nil {
		c.warnOnce(err)
	}
}

func (c *EmployeeCache) Close() error {
	if !c.Available() {
		return nil
	}
	return c.client.Close()
}

func (c *EmployeeCache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.log.Warn("cache: redis command failed, serving from database", "err", err)
	}
}

func employeeKey(id string) string {
	return employeeKeyPrefix + id
}

func generationKey(id string) string {
	return generationKeyPrefix + id
}
