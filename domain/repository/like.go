package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ILike interface {
	// Toggle flips membership of id in the user's target like set using
	// atomic conditional updates; it returns true when the item ends up liked.
	Toggle(ctx context.Context, userID bson.ObjectID, target model.LikeTarget, id bson.ObjectID) (bool, error)
	GetLikedVideos(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error)
	CountForVideo(ctx context.Context, videoID bson.ObjectID) (int64, error)
}
