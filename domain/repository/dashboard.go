package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IDashboard interface {
	GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, error)
}
