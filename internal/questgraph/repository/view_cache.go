package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix  = "qg:view:" // qg:view:{fingerprint}:{lang}:{id}
	defaultViewTTL = 24 * time.Hour
)

var ErrCacheMiss = errors.New("view cache miss")

// ViewCache stores serialized graph projections in Redis.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache. A non-positive ttl uses the default.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Key builds the cache key of one projection. The fingerprint scopes entries
// to a single dataset version. lang and nodeID are query-escaped so neither
// can contain the ':' separator.
func (c *ViewCache) Key(fingerprint, lang, nodeID string) string {
	return fmt.Sprintf("%s%s:%s:%s", viewKeyPrefix, fingerprint, url.QueryEscape(lang), url.QueryEscape(nodeID))
}

func (c *ViewCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view: %w", err)
	}
	return data, nil
}

func (c *ViewCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set view: %w", err)
	}
	return nil
}

func (c *ViewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
