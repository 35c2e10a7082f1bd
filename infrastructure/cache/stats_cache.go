package cache

import (
	"context"
	"encoding/json"
	"time"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// StatsCache memoizes dashboard channel stats. Every write path that moves a
// counter (video create/delete, subscription or like toggle, view) calls
// InvalidateChannelStats on the affected channel. Nil-safe: a nil Redis
// client turns every method into a no-op / miss.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) repository.IStatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(userID bson.ObjectID) string {
	return "vidtube:channel-stats:" + userID.Hex()
}

func (c *StatsCache) GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats model.ChannelStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Discarding undecodable cached channel stats")
		c.client.Del(ctx, statsKey(userID))
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) SetChannelStats(ctx context.Context, userID bson.ObjectID, stats *model.ChannelStats) {
	if c.client == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(userID), raw, c.ttl).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed caching channel stats")
	}
}

func (c *StatsCache) InvalidateChannelStats(ctx context.Context, userID bson.ObjectID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, statsKey(userID)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed invalidating channel stats")
	}
}
