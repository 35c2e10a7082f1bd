package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ISubscriptionUsecase interface {
	Toggle(ctx context.Context, subscriberID bson.ObjectID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]model.SubscriberEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]model.SubscribedChannelEntry, error)
	IsSubscribed(ctx context.Context, subscriberID bson.ObjectID, channelID string) (bool, error)
}

type SubscriptionUsecase struct {
	subscriptionRepository repository.ISubscription
	userRepository         repository.IUser
	statsCache             repository.IStatsCache
}

func NewSubscriptionUsecase(
	subscriptionRepository repository.ISubscription,
	userRepository repository.IUser,
	statsCache repository.IStatsCache,
) ISubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		statsCache:             statsCache,
	}
}

// Toggle flips the subscription edge. Subscribing to yourself is rejected
// before touching the collection.
func (u *SubscriptionUsecase) Toggle(ctx context.Context, subscriberID bson.ObjectID, channelID string) (bool, error) {
	id, err := bson.ObjectIDFromHex(channelID)
	if err != nil {
		return false, model.BadRequest("invalid channel id")
	}
	if id == subscriberID {
		return false, model.BadRequest("cannot subscribe to your own channel")
	}
	if _, err := u.userRepository.GetByID(ctx, id); err != nil {
		return false, err
	}

	subscribed, err := u.subscriptionRepository.Toggle(ctx, subscriberID, id)
	if err != nil {
		return false, err
	}
	u.statsCache.InvalidateChannelStats(ctx, id)
	return subscribed, nil
}

func (u *SubscriptionUsecase) ListSubscribers(ctx context.Context, channelID string) ([]model.SubscriberEntry, error) {
	id, err := bson.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, model.BadRequest("invalid channel id")
	}
	return u.subscriptionRepository.ListSubscribers(ctx, id)
}

func (u *SubscriptionUsecase) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]model.SubscribedChannelEntry, error) {
	id, err := bson.ObjectIDFromHex(subscriberID)
	if err != nil {
		return nil, model.BadRequest("invalid subscriber id")
	}
	return u.subscriptionRepository.ListSubscribedChannels(ctx, id)
}

func (u *SubscriptionUsecase) IsSubscribed(ctx context.Context, subscriberID bson.ObjectID, channelID string) (bool, error) {
	id, err := bson.ObjectIDFromHex(channelID)
	if err != nil {
		return false, model.BadRequest("invalid channel id")
	}
	return u.subscriptionRepository.IsSubscribed(ctx, subscriberID, id)
}
