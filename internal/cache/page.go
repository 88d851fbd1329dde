// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache.
// When a public storefront page is rendered, the resulting HTML is stored
// in Valkey so subsequent requests skip the DB query and template
// execution entirely. Keys are tenant-scoped so saving one tenant's page
// never evicts another's.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Returns false on miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateLocale removes the cached page for one tenant locale.
func (pc *PageCache) InvalidateLocale(ctx context.Context, tenantSlug, country, languageCode string) {
	key := PageKey(tenantSlug, country, languageCode)
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		slog.Warn("page cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("page cache invalidated", "key", key)
}

// InvalidateTenant removes every cached page belonging to a tenant,
// including policy pages. Used after structural edits (sync, copy) where
// multiple locales may be affected.
func (pc *PageCache) InvalidateTenant(ctx context.Context, tenantSlug string) {
	pattern := pageKeyPrefix + tenantSlug + ":*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache cleared for tenant", "tenant", tenantSlug, "deleted", deleted)
	}
}

// PageKey returns the cache key for a tenant's storefront page in a locale.
func PageKey(tenantSlug, country, languageCode string) string {
	return fmt.Sprintf("%s:%s:%s", tenantSlug, country, languageCode)
}

// PolicyKey returns the cache key for a tenant's rendered policy page.
// Policy content is shared across locales but the page chrome is not, so
// the key carries the locale.
func PolicyKey(tenantSlug, country, languageCode, policyType string) string {
	return fmt.Sprintf("%s:%s:%s:policy:%s", tenantSlug, country, languageCode, policyType)
}
