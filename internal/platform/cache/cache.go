// Package cache provides a Dragonfly/Redis client wrapper and snapshot
// storage for the loaded curriculum graph.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyhub-app/studyhub-backend/internal/content"
)

const graphKey = "studyhub:curriculum:graph"

// Cache wraps a Redis/Dragonfly client.
type Cache struct {
	Client *redis.Client
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New creates a new cache client.
func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client}, nil
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// SetGraph stores a JSON snapshot of the curriculum graph with the given TTL.
func (c *Cache) SetGraph(ctx context.Context, graph *content.Graph, ttl time.Duration) error {
	if graph == nil {
		return fmt.Errorf("graph is nil")
	}
	data, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("marshal graph snapshot: %w", err)
	}
	if err := c.Client.Set(ctx, graphKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("store graph snapshot: %w", err)
	}
	return nil
}

// GetGraph loads the cached graph snapshot. A cache miss returns (nil, false, nil).
func (c *Cache) GetGraph(ctx context.Context) (*content.Graph, bool, error) {
	data, err := c.Client.Get(ctx, graphKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("fetch graph snapshot: %w", err)
	}

	var graph content.Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, false, fmt.Errorf("decode graph snapshot: %w", err)
	}
	return &graph, true, nil
}

// InvalidateGraph drops the cached snapshot, forcing the next load to hit the
// sources.
func (c *Cache) InvalidateGraph(ctx context.Context) error {
	return c.Client.Del(ctx, graphKey).Err()
}
