package persistence

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type DashboardRepository struct {
	db *mongo.Database
}

func NewDashboardRepository(db *mongo.Database) repository.IDashboard {
	return &DashboardRepository{db: db}
}

// GetChannelStats computes every dashboard counter from joins at read time.
// The like count joins the like documents whose likedVideos intersect the
// channel's video ids; totalViews sums the joined videos' view counters.
func (r *DashboardRepository) GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		lookupStage(colSubscriptions, "_id", "channel", "subscribers"),
		lookupStage(colSubscriptions, "_id", "subscriber", "subscribedTo"),
		lookupStage(colVideos, "_id", "owner", "videos"),
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colLikes},
			{Key: "let", Value: bson.D{{Key: "videoIds", Value: "$videos._id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$unwind", Value: "$likedVideos"}},
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$in", Value: bson.A{"$likedVideos", "$$videoIds"}}}},
				}}},
			}},
			{Key: "as", Value: "likes"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			sizeField("subscribersCount", "subscribers"),
			sizeField("subscribedToCount", "subscribedTo"),
			sizeField("totalVideos", "videos"),
			sizeField("totalLikes", "likes"),
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$map", Value: bson.D{
					{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$videos", bson.A{}}}}},
					{Key: "as", Value: "video"},
					{Key: "in", Value: "$$video.views"},
				}},
			}}}},
		}}},
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "email", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "subscribedToCount", Value: 1},
			{Key: "totalVideos", Value: 1},
			{Key: "totalLikes", Value: 1},
			{Key: "totalViews", Value: 1},
		}),
	}

	cursor, err := r.db.Collection(colUsers).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var stats []model.ChannelStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, model.NotFound("user not found")
	}
	return &stats[0], nil
}
