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

type CommentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) repository.IComment {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) comments() *mongo.Collection {
	return r.db.Collection(colComments)
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	now := utils.GetCurrentTime()
	comment.ID = bson.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if _, err := r.comments().InsertOne(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := r.comments().FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListForVideo pages a video's comments with the same cursor engine as the
// feed, joining owners and like counts on the bounded page only.
func (r *CommentRepository) ListForVideo(ctx context.Context, videoID bson.ObjectID, opts query.ListOptions) (query.Page[model.CommentWithOwner], error) {
	if opts.Limit <= 0 {
		return query.EmptyPage[model.CommentWithOwner](), nil
	}

	base := bson.D{{Key: "video", Value: videoID}}
	pipeline := listPipeline(opts, "", base)
	pipeline = append(pipeline,
		ownerLookupStage("owner", "owner"),
		lookupStage(colLikes, "_id", "likedComments", "likes"),
		flattenFirstStage("owner"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "content", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "createdAt", Value: 1},
			sizeField("totalCommentLikes", "likes"),
		}),
	)

	cursor, err := r.comments().Aggregate(ctx, pipeline)
	if err != nil {
		return query.Page[model.CommentWithOwner]{}, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var items []model.CommentWithOwner
	if err := cursor.All(ctx, &items); err != nil {
		return query.Page[model.CommentWithOwner]{}, err
	}

	page := query.NewPage(items, opts,
		func(c model.CommentWithOwner) interface{} {
			if opts.SortBy == "createdAt" {
				return c.CreatedAt
			}
			return c.ID
		},
		func(c model.CommentWithOwner) bson.ObjectID { return c.ID },
	)
	return page, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.comments().FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updatedAt": utils.GetCurrentTime()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.comments().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.NotFound("comment not found")
	}
	return nil
}
