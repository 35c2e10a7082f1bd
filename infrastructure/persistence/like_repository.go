package persistence

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LikeRepository struct {
	db *mongo.Database
}

func NewLikeRepository(db *mongo.Database) repository.ILike {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) likes() *mongo.Collection {
	return r.db.Collection(colLikes)
}

// Toggle is two atomic conditional updates, never a read-modify-write.
// The $pull is filtered on membership, so only a document actually holding
// the id is modified; when nothing matched, the $addToSet upsert takes the
// like path. The unique index on likedBy keeps concurrent upserts from
// creating a second document for the same user.
func (r *LikeRepository) Toggle(ctx context.Context, userID bson.ObjectID, target model.LikeTarget, id bson.ObjectID) (bool, error) {
	field := string(target)

	res, err := r.likes().UpdateOne(ctx,
		bson.M{"likedBy": userID, field: id},
		bson.M{
			"$pull": bson.M{field: id},
			"$set":  bson.M{"updatedAt": utils.GetCurrentTime()},
		},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return false, nil
	}

	now := utils.GetCurrentTime()
	_, err = r.likes().UpdateOne(ctx,
		bson.M{"likedBy": userID},
		bson.M{
			"$addToSet": bson.M{field: id},
			"$set":      bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{
				"likedBy":   userID,
				"createdAt": now,
			},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost an upsert race against our own concurrent toggle; the
			// document exists now, retry the plain $addToSet once.
			_, err = r.likes().UpdateOne(ctx,
				bson.M{"likedBy": userID},
				bson.M{"$addToSet": bson.M{field: id}, "$set": bson.M{"updatedAt": now}},
			)
		}
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// GetLikedVideos expands the user's liked video ids into full video rows
// with their owners attached.
func (r *LikeRepository) GetLikedVideos(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "likedBy", Value: userID}}}},
		lookupStage(colVideos, "likedVideos", "_id", "videos",
			ownerLookupStage("owner", "owner"),
			flattenFirstStage("owner"),
		),
		projectStage(bson.D{{Key: "videos", Value: 1}}),
	}

	cursor, err := r.likes().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var rows []struct {
		Videos []model.VideoWithOwner `bson:"videos"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Videos == nil {
		return []model.VideoWithOwner{}, nil
	}
	return rows[0].Videos, nil
}

func (r *LikeRepository) CountForVideo(ctx context.Context, videoID bson.ObjectID) (int64, error) {
	return r.likes().CountDocuments(ctx, bson.M{"likedVideos": videoID})
}
