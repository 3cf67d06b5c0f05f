// Package cache keeps encoded public catalog responses in Redis so repeated
// filter queries skip filtering and encoding.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/imobiliaria/backend/utils"
)

const (
	keyPrefix = "catalog:"
	scanCount = 100
)

// Catalog is safe to use as a nil pointer; every call is then a miss or a
// no-op, which is how the server runs without Redis.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalog(client *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Catalog{client: client, ttl: ttl}
}

// Key identifies a response by route and query. Parameter order does not
// matter.
func Key(route string, query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(route)
	sb.WriteString(":")
	for _, key := range keys {
		values := append([]string{}, query[key]...)
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *Catalog) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		utils.Logger.WithField("key", key).Debug("Cache hit")
		return data, true
	}
	if err != redis.Nil {
		utils.Logger.WithError(err).WithField("key", key).Warn("Redis GET failed")
	}
	return nil, false
}

func (c *Catalog) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		utils.Logger.WithError(err).WithField("key", key).Warn("Failed to cache response")
	}
}

// Invalidate drops every cached catalog response and reports how many keys
// were removed.
func (c *Catalog) Invalidate(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}
	const scanPattern = keyPrefix + "*"

	var keysToDelete []string
	var cursor uint64
	for {
		currentKeys, next, err := c.client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			utils.Logger.WithError(err).WithField("pattern", scanPattern).Error("Redis SCAN failed")
			return 0, err
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return 0, nil
	}

	pipe := c.client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to delete %d catalog cache keys", len(keysToDelete))
		return 0, err
	}
	utils.Logger.Debugf("Catalog cache invalidated, %d keys deleted", len(keysToDelete))
	return len(keysToDelete), nil
}
