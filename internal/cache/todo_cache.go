package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "Planner/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "todo:"

// TodoCache caches per-owner read results (today's list, month views, month
// counts) in Redis. Keys are namespaced by owner so a write by one user only
// invalidates that user's entries.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func ownerKey(ownerID int64, suffix string) string {
	return keyPrefix + strconv.FormatInt(ownerID, 10) + ":" + suffix
}

// GetList returns the cached list for the owner-scoped suffix, or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, ownerID int64, suffix string) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, ownerKey(ownerID, suffix)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores a list result.
func (c *TodoCache) SetList(ctx context.Context, ownerID int64, suffix string, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ownerKey(ownerID, suffix), b, c.ttl).Err()
}

// GetCounts returns cached month counts, or nil on miss.
func (c *TodoCache) GetCounts(ctx context.Context, ownerID int64, suffix string) (*dom.TodoCounts, error) {
	b, err := c.rdb.Get(ctx, ownerKey(ownerID, suffix)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var counts dom.TodoCounts
	if err := json.Unmarshal(b, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// SetCounts stores month counts.
func (c *TodoCache) SetCounts(ctx context.Context, ownerID int64, suffix string, counts dom.TodoCounts) error {
	b, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ownerKey(ownerID, suffix), b, c.ttl).Err()
}

// InvalidateOwner removes every cached read for the owner (cache invalidation on write).
func (c *TodoCache) InvalidateOwner(ctx context.Context, ownerID int64) error {
	iter := c.rdb.Scan(ctx, 0, ownerKey(ownerID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
