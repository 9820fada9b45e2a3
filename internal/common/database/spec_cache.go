// internal/common/database/spec_cache.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"window-display-workers/internal/display/mapper"

	"github.com/redis/go-redis/v9"
)

// SpecCache memoizes mapper results in Redis. The mapper is a pure
// function of its inputs, so entries never need invalidation beyond TTL.
type SpecCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewSpecCache(client redis.Cmdable, prefix string, ttl time.Duration) *SpecCache {
	return &SpecCache{client: client, prefix: prefix, ttl: ttl}
}

// Key identifies one mapper call. Floats use the shortest exact
// representation so distinct inputs never collide.
func (c *SpecCache) Key(width, height float64, composition, depth, lighting, viewer string) string {
	return c.prefix + strings.Join([]string{
		strconv.FormatFloat(width, 'g', -1, 64),
		strconv.FormatFloat(height, 'g', -1, 64),
		composition,
		depth,
		lighting,
		viewer,
	}, "|")
}

// Get returns the cached spec. A miss is (nil, false, nil).
func (c *SpecCache) Get(ctx context.Context, key string) (*mapper.GeometricSpec, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("spec cache get: %w", err)
	}

	var spec mapper.GeometricSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, false, fmt.Errorf("spec cache decode %s: %w", key, err)
	}
	return &spec, true, nil
}

func (c *SpecCache) Put(ctx context.Context, key string, spec *mapper.GeometricSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("spec cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("spec cache set: %w", err)
	}
	return nil
}
