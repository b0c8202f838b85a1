package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/locauto/rental-system/internal/core/domain"
)

// VehicleCache is a read-through cache for single vehicle lookups.
// Key format: vehicle:<id>
type VehicleCache struct {
	client *redis.Client
}

// NewVehicleCache creates a VehicleCache wrapping the given Redis client.
func NewVehicleCache(client *redis.Client) *VehicleCache {
	return &VehicleCache{client: client}
}

// Get returns the cached vehicle, or (nil, nil) on a miss.
func (c *VehicleCache) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("vehicle cache get: %w", err)
	}

	var v domain.Vehicle
	if err := json.Unmarshal(raw, &v); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		return nil, nil
	}
	return &v, nil
}

// Set stores the vehicle for ttl.
func (c *VehicleCache) Set(ctx context.Context, v *domain.Vehicle, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("vehicle cache set: %w", err)
	}
	if err := c.client.Set(ctx, c.key(v.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("vehicle cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry after a write.
func (c *VehicleCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("vehicle cache invalidate: %w", err)
	}
	return nil
}

func (c *VehicleCache) key(id string) string {
	return "vehicle:" + id
}
