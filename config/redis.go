package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/imobiliaria/backend/utils"
)

// InitRedis connects to Redis. It returns nil without error when no address
// is configured.
func InitRedis(addr, password string) (*redis.Client, error) {
	if addr == "" {
		utils.Logger.Info("REDIS_ADDR not set, running without Redis")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	utils.Logger.Info("Connected to Redis")
	return client, nil
}
