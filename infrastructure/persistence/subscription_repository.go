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
)

type SubscriptionRepository struct {
	db *mongo.Database
}

func NewSubscriptionRepository(db *mongo.Database) repository.ISubscription {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) subscriptions() *mongo.Collection {
	return r.db.Collection(colSubscriptions)
}

// Toggle deletes the edge when it exists, otherwise inserts it. The unique
// (subscriber, channel) index closes the race between two concurrent
// toggles: a losing insert surfaces as a duplicate key and the state is
// already what the caller asked for.
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID bson.ObjectID) (bool, error) {
	edge := bson.M{"subscriber": subscriberID, "channel": channelID}

	res, err := r.subscriptions().DeleteOne(ctx, edge)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	_, err = r.subscriptions().InsertOne(ctx, model.Subscription{
		ID:         bson.NewObjectID(),
		Subscriber: subscriberID,
		Channel:    channelID,
		CreatedAt:  utils.GetCurrentTime(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID bson.ObjectID) ([]model.SubscriberEntry, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "channel", Value: channelID}}}},
		ownerLookupStage("subscriber", "subscriber"),
		flattenFirstStage("subscriber"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "subscriber", Value: 1},
		}),
	}
	var entries []model.SubscriberEntry
	if err := r.aggregateAll(ctx, pipeline, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.SubscriberEntry{}
	}
	return entries, nil
}

func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID bson.ObjectID) ([]model.SubscribedChannelEntry, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "subscriber", Value: subscriberID}}}},
		ownerLookupStage("channel", "channel"),
		flattenFirstStage("channel"),
		projectStage(bson.D{
			{Key: "_id", Value: 1},
			{Key: "channel", Value: 1},
		}),
	}
	var entries []model.SubscribedChannelEntry
	if err := r.aggregateAll(ctx, pipeline, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.SubscribedChannelEntry{}
	}
	return entries, nil
}

func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID bson.ObjectID) (bool, error) {
	err := r.subscriptions().FindOne(ctx, bson.M{
		"subscriber": subscriberID,
		"channel":    channelID,
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SubscriptionRepository) aggregateAll(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.subscriptions().Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()
	return cursor.All(ctx, out)
}
