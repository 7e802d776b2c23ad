package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores computed per-connection health scores so dashboard polls
// between scans skip recomputation. Entries expire on their own and are
// dropped eagerly when a scan for the connection finishes.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(addr string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Printf("connected to redis: %s", addr)

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func (c *Cache) Close() error { return c.rdb.Close() }

func healthKey(connectionID string) string {
	return fmt.Sprintf("health:%s", connectionID)
}

func (c *Cache) GetHealth(ctx context.Context, connectionID string) (int, bool, error) {
	score, err := c.rdb.Get(ctx, healthKey(connectionID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get health for %s: %w", connectionID, err)
	}
	return score, true, nil
}

func (c *Cache) SetHealth(ctx context.Context, connectionID string, score int) error {
	if err := c.rdb.Set(ctx, healthKey(connectionID), score, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store health for %s: %w", connectionID, err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, connectionIDs ...string) error {
	if len(connectionIDs) == 0 {
		return nil
	}
	keys := make([]string, len(connectionIDs))
	for i, id := range connectionIDs {
		keys[i] = healthKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate health keys: %w", err)
	}
	return nil
}
