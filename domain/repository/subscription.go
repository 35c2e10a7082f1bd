package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ISubscription interface {
	// Toggle creates the edge when absent and deletes it when present; it
	// returns true when the caller ends up subscribed.
	Toggle(ctx context.Context, subscriberID, channelID bson.ObjectID) (bool, error)
	ListSubscribers(ctx context.Context, channelID bson.ObjectID) ([]model.SubscriberEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID bson.ObjectID) ([]model.SubscribedChannelEntry, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID bson.ObjectID) (bool, error)
}
