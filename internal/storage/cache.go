// Package storage holds the optional redis snapshot cache. It only exists
// so a restarted process can serve the last published dataset before its
// first refresh lands; the pipeline never reads it as an input source.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey = "naijawatch:snapshot:latest"
	snapshotTTL = 48 * time.Hour
)

// Cache wraps a redis client. A nil *Cache is valid and turns every
// operation into a no-op, so callers never branch on redis availability.
type Cache struct {
	rdb *redis.Client
}

// Open connects to redis at addr; an empty addr disables caching. An
// unreachable server is only a warning: every later operation fails soft.
func Open(addr string) *Cache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Cache{rdb: rdb}
}

// SaveSnapshot stores the marshaled snapshot with a TTL.
func (c *Cache) SaveSnapshot(ctx context.Context, data []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		log.Printf("warn: cache snapshot: %v", err)
	}
}

// LoadSnapshot returns the cached snapshot bytes, or nil when there is none.
func (c *Cache) LoadSnapshot(ctx context.Context) []byte {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("warn: load cached snapshot: %v", err)
		}
		return nil
	}
	return data
}
