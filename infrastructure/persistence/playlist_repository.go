package persistence

import (
	"context"
	"errors"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PlaylistRepository struct {
	db *mongo.Database
}

func NewPlaylistRepository(db *mongo.Database) repository.IPlaylist {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) playlists() *mongo.Collection {
	return r.db.Collection(colPlaylists)
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	now := utils.GetCurrentTime()
	playlist.ID = bson.NewObjectID()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Videos == nil {
		playlist.Videos = []bson.ObjectID{}
	}
	if _, err := r.playlists().InsertOne(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.playlists().FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("playlist not found")
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner returns summaries: name, first video's thumbnail as the
// cover, and the video count computed from the reference list itself.
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.PlaylistSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "owner", Value: ownerID}}}},
		lookupStage(colVideos, "videos", "_id", "videoDetails",
			bson.D{{Key: "$project", Value: bson.D{{Key: "thumbnail", Value: 1}}}},
		),
		bson.D{{Key: "$addFields", Value: bson.D{
			sizeField("totalVideos", "videos"),
			{Key: "thumbnail", Value: bson.D{{Key: "$first", Value: "$videoDetails.thumbnail"}}},
		}}},
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "totalVideos", Value: 1},
		}),
	}

	cursor, err := r.playlists().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var summaries []model.PlaylistSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.PlaylistSummary{}
	}
	return summaries, nil
}

func (r *PlaylistRepository) GetDetails(ctx context.Context, id bson.ObjectID) (*model.PlaylistDetails, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookupStage(colVideos, "videos", "_id", "videoDetails",
			bson.D{{Key: "$project", Value: bson.D{{Key: "thumbnail", Value: 1}}}},
		),
		ownerLookupStage("owner", "owner"),
		bson.D{{Key: "$addFields", Value: bson.D{
			sizeField("totalVideos", "videos"),
			{Key: "thumbnail", Value: bson.D{{Key: "$first", Value: "$videoDetails.thumbnail"}}},
		}}},
		flattenFirstStage("owner"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "totalVideos", Value: 1},
			{Key: "owner", Value: 1},
		}),
	}

	cursor, err := r.playlists().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var details []model.PlaylistDetails
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, model.NotFound("playlist not found")
	}
	return &details[0], nil
}

func (r *PlaylistRepository) GetVideos(ctx context.Context, id bson.ObjectID) (*model.PlaylistVideos, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookupStage(colVideos, "videos", "_id", "videos",
			ownerLookupStage("owner", "owner"),
			flattenFirstStage("owner"),
		),
		projectStage(bson.D{{Key: "videos", Value: 1}}),
	}

	cursor, err := r.playlists().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var expanded []model.PlaylistVideos
	if err := cursor.All(ctx, &expanded); err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return nil, model.NotFound("playlist not found")
	}
	if expanded[0].Videos == nil {
		expanded[0].Videos = []model.VideoWithOwner{}
	}
	return &expanded[0], nil
}

// AddVideo appends via $addToSet; a playlist can never hold the same video twice.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID bson.ObjectID) (bool, error) {
	res, err := r.playlists().UpdateOne(ctx, bson.M{"_id": playlistID}, bson.M{
		"$addToSet": bson.M{"videos": videoID},
		"$set":      bson.M{"updatedAt": utils.GetCurrentTime()},
	})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, model.NotFound("playlist not found")
	}
	return res.ModifiedCount > 0, nil
}

// RemoveVideo pulls the reference; the membership filter makes "not in the
// playlist" observable without a prior read.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID bson.ObjectID) (bool, error) {
	res, err := r.playlists().UpdateOne(ctx,
		bson.M{"_id": playlistID, "videos": videoID},
		bson.M{
			"$pull": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": utils.GetCurrentTime()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, id bson.ObjectID, name, description string) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.playlists().FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "description": description, "updatedAt": utils.GetCurrentTime()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("playlist not found")
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.playlists().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.NotFound("playlist not found")
	}
	return nil
}
