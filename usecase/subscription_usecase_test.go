package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/usecase"
)

func newSubscriptionUsecase() (usecase.ISubscriptionUsecase, *MockSubscriptionRepository, *MockUserRepository, *MockStatsCache) {
	subRepo := new(MockSubscriptionRepository)
	userRepo := new(MockUserRepository)
	statsCache := new(MockStatsCache)
	uc := usecase.NewSubscriptionUsecase(subRepo, userRepo, statsCache)
	return uc, subRepo, userRepo, statsCache
}

func TestToggleSubscribeThenUnsubscribe(t *testing.T) {
	uc, subRepo, userRepo, statsCache := newSubscriptionUsecase()
	subscriberID := bson.NewObjectID()
	channelID := bson.NewObjectID()

	userRepo.On("GetByID", mock.Anything, channelID).
		Return(&model.User{ID: channelID}, nil)
	statsCache.On("InvalidateChannelStats", mock.Anything, channelID).Return()

	subRepo.On("Toggle", mock.Anything, subscriberID, channelID).Return(true, nil).Once()
	subscribed, err := uc.Toggle(context.Background(), subscriberID, channelID.Hex())
	assert.NoError(t, err)
	assert.True(t, subscribed)

	subRepo.On("Toggle", mock.Anything, subscriberID, channelID).Return(false, nil).Once()
	subscribed, err = uc.Toggle(context.Background(), subscriberID, channelID.Hex())
	assert.NoError(t, err)
	assert.False(t, subscribed)

	statsCache.AssertNumberOfCalls(t, "InvalidateChannelStats", 2)
}

func TestToggleRejectsSelfSubscription(t *testing.T) {
	uc, subRepo, _, _ := newSubscriptionUsecase()
	userID := bson.NewObjectID()

	_, err := uc.Toggle(context.Background(), userID, userID.Hex())
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
	subRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleRejectsUnknownChannel(t *testing.T) {
	uc, _, userRepo, _ := newSubscriptionUsecase()
	channelID := bson.NewObjectID()

	userRepo.On("GetByID", mock.Anything, channelID).
		Return(nil, model.NotFound("user not found"))

	_, err := uc.Toggle(context.Background(), bson.NewObjectID(), channelID.Hex())
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, model.StatusOf(err))
}

func TestToggleRejectsMalformedChannelID(t *testing.T) {
	uc, _, _, _ := newSubscriptionUsecase()

	_, err := uc.Toggle(context.Background(), bson.NewObjectID(), "bogus")
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestIsSubscribed(t *testing.T) {
	uc, subRepo, _, _ := newSubscriptionUsecase()
	subscriberID := bson.NewObjectID()
	channelID := bson.NewObjectID()

	subRepo.On("IsSubscribed", mock.Anything, subscriberID, channelID).Return(true, nil)

	subscribed, err := uc.IsSubscribed(context.Background(), subscriberID, channelID.Hex())
	assert.NoError(t, err)
	assert.True(t, subscribed)
}

func TestListSubscribers(t *testing.T) {
	uc, subRepo, _, _ := newSubscriptionUsecase()
	channelID := bson.NewObjectID()

	subRepo.On("ListSubscribers", mock.Anything, channelID).
		Return([]model.SubscriberEntry{{ID: bson.NewObjectID()}}, nil)

	subscribers, err := uc.ListSubscribers(context.Background(), channelID.Hex())
	assert.NoError(t, err)
	assert.Len(t, subscribers, 1)
}
