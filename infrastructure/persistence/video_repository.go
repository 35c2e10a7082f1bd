package persistence

import (
	"context"
	"errors"

	"vidtube/domain/model"
	"vidtube/domain/query"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type VideoRepository struct {
	db *mongo.Database
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) videos() *mongo.Collection {
	return r.db.Collection(colVideos)
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) (*model.Video, error) {
	now := utils.GetCurrentTime()
	video.ID = bson.NewObjectID()
	video.CreatedAt = now
	video.UpdatedAt = now
	if video.ViewedBy == nil {
		video.ViewedBy = []bson.ObjectID{}
	}
	if _, err := r.videos().InsertOne(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	var video model.Video
	err := r.videos().FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("video not found")
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List runs the feed pipeline. Stage order is fixed: filter and cursor
// predicate first, then the composite sort, then the limit, and only then
// the owner join, so the join cost is bounded by the page size.
func (r *VideoRepository) List(ctx context.Context, opts query.ListOptions) (query.Page[model.VideoWithOwner], error) {
	if opts.Limit <= 0 {
		return query.EmptyPage[model.VideoWithOwner](), nil
	}

	pipeline := listPipeline(opts, "title", bson.D{})
	pipeline = append(pipeline,
		ownerLookupStage("owner", "owner"),
		flattenFirstStage("owner"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "videoFile", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "views", Value: 1},
			{Key: "isPublished", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "createdAt", Value: 1},
		}),
	)

	cursor, err := r.videos().Aggregate(ctx, pipeline)
	if err != nil {
		return query.Page[model.VideoWithOwner]{}, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var items []model.VideoWithOwner
	if err := cursor.All(ctx, &items); err != nil {
		return query.Page[model.VideoWithOwner]{}, err
	}

	page := query.NewPage(items, opts,
		func(v model.VideoWithOwner) interface{} { return sortValueOfVideo(v, opts.SortBy) },
		func(v model.VideoWithOwner) bson.ObjectID { return v.ID },
	)
	return page, nil
}

func sortValueOfVideo(v model.VideoWithOwner, sortBy string) interface{} {
	switch sortBy {
	case "views":
		return v.Views
	case "createdAt":
		return v.CreatedAt
	case "duration":
		return v.Duration
	case "title":
		return v.Title
	default:
		return v.ID
	}
}

// Count is the explicit full-set count; deliberately a separate operation so
// no page fetch ever pays for it.
func (r *VideoRepository) Count(ctx context.Context, opts query.ListOptions) (int64, error) {
	counted := opts
	counted.Cursor = nil
	match := listMatchStage(counted, "title", bson.D{})
	filter := match[0].Value
	return r.videos().CountDocuments(ctx, filter)
}

// GetDetails fetches a single video with its owner (enriched with the
// read-time subscriber count) and like count.
func (r *VideoRepository) GetDetails(ctx context.Context, id bson.ObjectID) (*model.VideoDetails, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookupStage(colUsers, "owner", "_id", "owner",
			lookupStage(colSubscriptions, "_id", "channel", "subscribers"),
			bson.D{{Key: "$addFields", Value: bson.D{sizeField("subscriberCount", "subscribers")}}},
			bson.D{{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "username", Value: 1},
				{Key: "fullName", Value: 1},
				{Key: "avatar", Value: 1},
				{Key: "subscriberCount", Value: 1},
			}}},
		),
		lookupStage(colLikes, "_id", "likedVideos", "likes"),
		flattenFirstStage("owner"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "videoFile", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "views", Value: 1},
			{Key: "isPublished", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "createdAt", Value: 1},
			sizeField("totalLikes", "likes"),
		}),
	}

	cursor, err := r.videos().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var details []model.VideoDetails
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, model.NotFound("video not found")
	}
	return &details[0], nil
}

func (r *VideoRepository) UpdateTitleAndDescription(ctx context.Context, id bson.ObjectID, title, description string) (*model.Video, error) {
	set := bson.M{"updatedAt": utils.GetCurrentTime()}
	if title != "" {
		set["title"] = title
	}
	if description != "" {
		set["description"] = description
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *VideoRepository) UpdateThumbnail(ctx context.Context, id bson.ObjectID, url, publicID string) (*model.Video, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"thumbnail":         url,
		"thumbnailPublicId": publicID,
		"updatedAt":         utils.GetCurrentTime(),
	}})
}

func (r *VideoRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update bson.M) (*model.Video, error) {
	var video model.Video
	err := r.videos().FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("video not found")
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.videos().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.NotFound("video not found")
	}
	return nil
}

// TogglePublishStatus flips isPublished in a single pipeline update, so two
// racing toggles still land on distinct states.
func (r *VideoRepository) TogglePublishStatus(ctx context.Context, id bson.ObjectID) (bool, error) {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: bson.D{{Key: "$not", Value: "$isPublished"}}},
			{Key: "updatedAt", Value: utils.GetCurrentTime()},
		}}},
	}
	var video model.Video
	err := r.videos().FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, model.NotFound("video not found")
	}
	if err != nil {
		return false, err
	}
	return video.IsPublished, nil
}

// RecordView adds the viewer to viewedBy and increments views in one
// conditional update; a viewer already in the set matches nothing, so
// concurrent views from the same user cannot double count.
func (r *VideoRepository) RecordView(ctx context.Context, videoID, viewerID bson.ObjectID) (int64, bool, error) {
	res, err := r.videos().UpdateOne(ctx,
		bson.M{"_id": videoID, "viewedBy": bson.M{"$ne": viewerID}},
		bson.M{
			"$addToSet": bson.M{"viewedBy": viewerID},
			"$inc":      bson.M{"views": 1},
		},
	)
	if err != nil {
		return 0, false, err
	}

	video, err := r.GetByID(ctx, videoID)
	if err != nil {
		return 0, false, err
	}
	return video.Views, res.ModifiedCount > 0, nil
}
