package cache

import (
	"context"

	"vidtube/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis; a failed ping is reported to the caller so it
// can continue without caching.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not reachable")
		return nil, err
	}
	return client, nil
}
