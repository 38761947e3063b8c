package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/damda-platform/damda-admin/internal/metrics"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Lists caches rendered list responses per entity in Redis. The Mutation
// Wrapper invalidates an entity's entries after every successful mutation,
// so a stale page never outlives the next write. All cache errors fail open.
type Lists struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewLists creates a list cache with the given entry TTL.
func NewLists(client redis.Cmdable, ttl time.Duration) *Lists {
	return &Lists{client: client, ttl: ttl}
}

// Get returns a cached list payload, or nil on miss or Redis error.
func (c *Lists) Get(ctx context.Context, entity string, q store.PagedQuery) []byte {
	data, err := c.client.Get(ctx, listKey(entity, q)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("list cache: get failed", "entity", entity, "error", err)
		}
		metrics.ListCacheMisses.Inc()
		return nil
	}
	metrics.ListCacheHits.Inc()
	return data
}

// Set stores a list payload and registers its key for invalidation.
func (c *Lists) Set(ctx context.Context, entity string, q store.PagedQuery, payload []byte) {
	key := listKey(entity, q)
	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, payload, c.ttl)
	pipe.SAdd(ctx, keySetKey(entity), key)
	pipe.Expire(ctx, keySetKey(entity), c.ttl+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("list cache: set failed", "entity", entity, "error", err)
	}
}

// Invalidate drops every cached page for the entity.
func (c *Lists) Invalidate(ctx context.Context, entity string) {
	setKey := keySetKey(entity)
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		slog.Warn("list cache: invalidate failed", "entity", entity, "error", err)
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			slog.Warn("list cache: deleting entries", "entity", entity, "error", err)
		}
	}
	if err := c.client.Del(ctx, setKey).Err(); err != nil {
		slog.Warn("list cache: deleting key set", "entity", entity, "error", err)
	}
}

func listKey(entity string, q store.PagedQuery) string {
	q = q.Normalize()

	parts := make([]string, 0, len(q.Filters))
	for k, v := range q.Filters {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	canonical := fmt.Sprintf("p=%d&s=%d&%s", q.Page, q.PageSize, strings.Join(parts, "&"))

	sum := sha1.Sum([]byte(canonical))
	return "listcache:" + entity + ":" + hex.EncodeToString(sum[:])
}

func keySetKey(entity string) string {
	return "listcache:keys:" + entity
}
