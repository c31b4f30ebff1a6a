package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

const catalogKey = "sweets:catalog"

// CatalogCache caches the unfiltered sweet listing as a JSON blob. Any
// inventory mutation invalidates the key; entries also expire after ttl so a
// missed invalidation cannot serve stale data forever.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache wraps the given Redis client. A non-positive ttl defaults
// to five minutes.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached catalog and whether the cache was warm.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Sweet, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		// Corrupt entry: drop it and report a miss.
		_ = c.client.Del(ctx, catalogKey).Err()
		return nil, false, nil
	}
	return sweets, true, nil
}

// Set stores the catalog with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, sweets []domain.Sweet) error {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache marshal: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, c.ttl).Err()
}

// Invalidate removes the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
