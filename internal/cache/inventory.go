package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache keys. Rendered post content is deliberately never cached:
// rendering is recomputed on every read.
const (
	CategoryListKey = "categories:list"
	TagListKey      = "tags:list"

	blacklistPrefix = "blacklist:%s"
)

const (
	// TaxonomyTTL bounds staleness of category/tag lists between the
	// write-path invalidations.
	TaxonomyTTL = 10 * time.Minute
)

// TokenBlacklistKey returns the Redis key holding a revoked JWT ID.
func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(blacklistPrefix, jti)
}

// Invalidate removes a key. No-op when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateTaxonomies drops the cached category and tag lists.
func InvalidateTaxonomies(ctx context.Context) {
	Invalidate(ctx, CategoryListKey)
	Invalidate(ctx, TagListKey)
}
