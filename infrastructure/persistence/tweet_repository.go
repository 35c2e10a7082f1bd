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

type TweetRepository struct {
	db *mongo.Database
}

func NewTweetRepository(db *mongo.Database) repository.ITweet {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) tweets() *mongo.Collection {
	return r.db.Collection(colTweets)
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	now := utils.GetCurrentTime()
	tweet.ID = bson.NewObjectID()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	if _, err := r.tweets().InsertOne(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.tweets().FindOne(ctx, bson.M{"_id": id}).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("tweet not found")
	}
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.TweetWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "owner", Value: ownerID}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		ownerLookupStage("owner", "owner"),
		flattenFirstStage("owner"),
	}

	cursor, err := r.tweets().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var tweets []model.TweetWithOwner
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	if tweets == nil {
		tweets = []model.TweetWithOwner{}
	}
	return tweets, nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.tweets().FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updatedAt": utils.GetCurrentTime()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.NotFound("tweet not found")
	}
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.tweets().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.NotFound("tweet not found")
	}
	return nil
}
