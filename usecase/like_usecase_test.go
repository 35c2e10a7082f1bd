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

func newLikeUsecase() (usecase.ILikeUsecase, *MockLikeRepository, *MockVideoRepository, *MockCommentRepository, *MockTweetRepository, *MockStatsCache) {
	likeRepo := new(MockLikeRepository)
	videoRepo := new(MockVideoRepository)
	commentRepo := new(MockCommentRepository)
	tweetRepo := new(MockTweetRepository)
	statsCache := new(MockStatsCache)
	uc := usecase.NewLikeUsecase(likeRepo, videoRepo, commentRepo, tweetRepo, statsCache)
	return uc, likeRepo, videoRepo, commentRepo, tweetRepo, statsCache
}

func TestToggleVideoLikeFlipsState(t *testing.T) {
	uc, likeRepo, videoRepo, _, _, statsCache := newLikeUsecase()
	userID := bson.NewObjectID()
	videoID := bson.NewObjectID()
	ownerID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: ownerID}, nil)
	statsCache.On("InvalidateChannelStats", mock.Anything, ownerID).Return()

	// first toggle likes, second unlikes
	likeRepo.On("Toggle", mock.Anything, userID, model.LikeTargetVideo, videoID).Return(true, nil).Once()
	liked, err := uc.ToggleVideoLike(context.Background(), userID, videoID.Hex())
	assert.NoError(t, err)
	assert.True(t, liked)

	likeRepo.On("Toggle", mock.Anything, userID, model.LikeTargetVideo, videoID).Return(false, nil).Once()
	liked, err = uc.ToggleVideoLike(context.Background(), userID, videoID.Hex())
	assert.NoError(t, err)
	assert.False(t, liked)

	statsCache.AssertNumberOfCalls(t, "InvalidateChannelStats", 2)
}

func TestToggleVideoLikeRejectsInvalidID(t *testing.T) {
	uc, _, _, _, _, _ := newLikeUsecase()

	_, err := uc.ToggleVideoLike(context.Background(), bson.NewObjectID(), "nope")
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestToggleVideoLikeRejectsMissingVideo(t *testing.T) {
	uc, likeRepo, videoRepo, _, _, _ := newLikeUsecase()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(nil, model.NotFound("video not found"))

	_, err := uc.ToggleVideoLike(context.Background(), bson.NewObjectID(), videoID.Hex())
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, model.StatusOf(err))
	likeRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleCommentLikeUsesCommentSet(t *testing.T) {
	uc, likeRepo, _, commentRepo, _, _ := newLikeUsecase()
	userID := bson.NewObjectID()
	commentID := bson.NewObjectID()

	commentRepo.On("GetByID", mock.Anything, commentID).
		Return(&model.Comment{ID: commentID}, nil)
	likeRepo.On("Toggle", mock.Anything, userID, model.LikeTargetComment, commentID).Return(true, nil)

	liked, err := uc.ToggleCommentLike(context.Background(), userID, commentID.Hex())
	assert.NoError(t, err)
	assert.True(t, liked)
	likeRepo.AssertExpectations(t)
}

func TestToggleTweetLikeUsesTweetSet(t *testing.T) {
	uc, likeRepo, _, _, tweetRepo, _ := newLikeUsecase()
	userID := bson.NewObjectID()
	tweetID := bson.NewObjectID()

	tweetRepo.On("GetByID", mock.Anything, tweetID).
		Return(&model.Tweet{ID: tweetID}, nil)
	likeRepo.On("Toggle", mock.Anything, userID, model.LikeTargetTweet, tweetID).Return(true, nil)

	liked, err := uc.ToggleTweetLike(context.Background(), userID, tweetID.Hex())
	assert.NoError(t, err)
	assert.True(t, liked)
	likeRepo.AssertExpectations(t)
}

func TestGetLikedVideos(t *testing.T) {
	uc, likeRepo, _, _, _, _ := newLikeUsecase()
	userID := bson.NewObjectID()

	likeRepo.On("GetLikedVideos", mock.Anything, userID).
		Return([]model.VideoWithOwner{{ID: bson.NewObjectID()}}, nil)

	videos, err := uc.GetLikedVideos(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, videos, 1)
}
