package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IStatsCache memoizes dashboard channel stats between writes. A nil-safe
// implementation backed by Redis lives in infrastructure/cache.
type IStatsCache interface {
	GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, bool)
	SetChannelStats(ctx context.Context, userID bson.ObjectID, stats *model.ChannelStats)
	InvalidateChannelStats(ctx context.Context, userID bson.ObjectID)
}
