package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/query"
	"vidtube/usecase"
)

func newVideoUsecase(t *testing.T) (usecase.IVideoUsecase, *MockVideoRepository, *MockMediaHost, *MockStatsCache, *MockVideoEvents) {
	t.Helper()
	videoRepo := new(MockVideoRepository)
	mediaHost := new(MockMediaHost)
	statsCache := new(MockStatsCache)
	videoEvents := new(MockVideoEvents)
	uc := usecase.NewVideoUsecase(videoRepo, mediaHost, statsCache, videoEvents)
	return uc, videoRepo, mediaHost, statsCache, videoEvents
}

func listRequest() *dto.VideoListRequest {
	return &dto.VideoListRequest{Limit: 10, SortBy: "views", SortType: "desc"}
}

func TestListRejectsUnknownSortField(t *testing.T) {
	uc, _, _, _, _ := newVideoUsecase(t)

	req := listRequest()
	req.SortBy = "password"
	_, err := uc.List(context.Background(), req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestListRejectsMalformedCursor(t *testing.T) {
	uc, _, _, _, _ := newVideoUsecase(t)

	req := listRequest()
	req.LastVideoID = "@@not-base64@@"
	_, err := uc.List(context.Background(), req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestListRejectsCursorForDifferentOrdering(t *testing.T) {
	uc, _, _, _, _ := newVideoUsecase(t)

	cursor := &query.Cursor{
		SortBy:    "createdAt",
		Direction: query.Descending,
		SortValue: int64(1),
		LastID:    bson.NewObjectID(),
	}
	req := listRequest()
	req.LastVideoID = cursor.Encode()

	_, err := uc.List(context.Background(), req)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestListRejectsInvalidUserID(t *testing.T) {
	uc, _, _, _, _ := newVideoUsecase(t)

	req := listRequest()
	req.UserID = "whoops"
	_, err := uc.List(context.Background(), req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestListCapsLimit(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)

	req := listRequest()
	req.Limit = 500
	videoRepo.On("List", mock.Anything, mock.MatchedBy(func(opts query.ListOptions) bool {
		return opts.Limit == 50 && opts.PublishedOnly
	})).Return(query.EmptyPage[model.VideoWithOwner](), nil)

	_, err := uc.List(context.Background(), req)
	assert.NoError(t, err)
	videoRepo.AssertExpectations(t)
}

func TestListWithTotalRunsSeparateCount(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)

	req := listRequest()
	req.WithTotal = true
	videoRepo.On("List", mock.Anything, mock.Anything).
		Return(query.EmptyPage[model.VideoWithOwner](), nil)
	videoRepo.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)

	payload, err := uc.List(context.Background(), req)
	assert.NoError(t, err)
	assert.NotNil(t, payload.TotalVideos)
	assert.Equal(t, int64(25), *payload.TotalVideos)
}

func TestListWithoutTotalSkipsCount(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)

	videoRepo.On("List", mock.Anything, mock.Anything).
		Return(query.EmptyPage[model.VideoWithOwner](), nil)

	payload, err := uc.List(context.Background(), listRequest())
	assert.NoError(t, err)
	assert.Nil(t, payload.TotalVideos)
	videoRepo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestPublishRollsBackUploadsWhenInsertFails(t *testing.T) {
	uc, videoRepo, mediaHost, _, _ := newVideoUsecase(t)
	ownerID := bson.NewObjectID()

	mediaHost.On("Upload", mock.Anything, "/tmp/video.mp4").
		Return(&model.MediaAsset{URL: "http://cdn/video", PublicID: "v-1", Duration: 30}, nil)
	mediaHost.On("Upload", mock.Anything, "/tmp/thumb.png").
		Return(&model.MediaAsset{URL: "http://cdn/thumb", PublicID: "t-1"}, nil)
	videoRepo.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("insert failed"))
	mediaHost.On("Delete", mock.Anything, "v-1").Return(nil)
	mediaHost.On("Delete", mock.Anything, "t-1").Return(nil)

	req := &dto.PublishVideoRequest{Title: "t", Description: "d"}
	_, err := uc.Publish(context.Background(), ownerID, req, "/tmp/video.mp4", "/tmp/thumb.png")

	assert.Error(t, err)
	mediaHost.AssertCalled(t, "Delete", mock.Anything, "v-1")
	mediaHost.AssertCalled(t, "Delete", mock.Anything, "t-1")
}

func TestPublishRollsBackFirstUploadWhenSecondFails(t *testing.T) {
	uc, _, mediaHost, _, _ := newVideoUsecase(t)
	ownerID := bson.NewObjectID()

	mediaHost.On("Upload", mock.Anything, "/tmp/video.mp4").
		Return(&model.MediaAsset{URL: "http://cdn/video", PublicID: "v-1", Duration: 30}, nil)
	mediaHost.On("Upload", mock.Anything, "/tmp/thumb.png").
		Return(nil, errors.New("upload failed"))
	mediaHost.On("Delete", mock.Anything, "v-1").Return(nil)

	req := &dto.PublishVideoRequest{Title: "t", Description: "d"}
	_, err := uc.Publish(context.Background(), ownerID, req, "/tmp/video.mp4", "/tmp/thumb.png")

	assert.Error(t, err)
	mediaHost.AssertCalled(t, "Delete", mock.Anything, "v-1")
}

func TestPublishEmitsEventAndInvalidatesStats(t *testing.T) {
	uc, videoRepo, mediaHost, statsCache, videoEvents := newVideoUsecase(t)
	ownerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	mediaHost.On("Upload", mock.Anything, mock.Anything).
		Return(&model.MediaAsset{URL: "http://cdn/a", PublicID: "p", Duration: 12}, nil)
	videoRepo.On("Create", mock.Anything, mock.Anything).
		Return(&model.Video{ID: videoID, Owner: ownerID, Duration: 12}, nil)
	statsCache.On("InvalidateChannelStats", mock.Anything, ownerID).Return()
	videoEvents.On("Publish", mock.Anything, "video.published", videoID, ownerID).Return(nil)

	req := &dto.PublishVideoRequest{Title: "t", Description: "d"}
	video, err := uc.Publish(context.Background(), ownerID, req, "/tmp/v", "/tmp/t")

	assert.NoError(t, err)
	assert.Equal(t, videoID, video.ID)
	statsCache.AssertExpectations(t)
	videoEvents.AssertExpectations(t)
}

func TestGetCountsViewOncePerViewer(t *testing.T) {
	uc, videoRepo, _, statsCache, _ := newVideoUsecase(t)
	videoID := bson.NewObjectID()
	viewerID := bson.NewObjectID()
	ownerID := bson.NewObjectID()

	details := &model.VideoDetails{ID: videoID, Views: 5, Owner: &model.ChannelOwnerInfo{ID: ownerID}}
	videoRepo.On("GetDetails", mock.Anything, videoID).Return(details, nil)
	videoRepo.On("RecordView", mock.Anything, videoID, viewerID).Return(int64(6), true, nil)
	statsCache.On("InvalidateChannelStats", mock.Anything, ownerID).Return()

	got, err := uc.Get(context.Background(), videoID.Hex(), viewerID)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), got.Views)
	statsCache.AssertExpectations(t)
}

func TestGetRepeatViewDoesNotBumpViews(t *testing.T) {
	uc, videoRepo, _, statsCache, _ := newVideoUsecase(t)
	videoID := bson.NewObjectID()
	viewerID := bson.NewObjectID()

	details := &model.VideoDetails{ID: videoID, Views: 5, Owner: &model.ChannelOwnerInfo{ID: bson.NewObjectID()}}
	videoRepo.On("GetDetails", mock.Anything, videoID).Return(details, nil)
	videoRepo.On("RecordView", mock.Anything, videoID, viewerID).Return(int64(5), false, nil)

	got, err := uc.Get(context.Background(), videoID.Hex(), viewerID)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), got.Views)
	statsCache.AssertNotCalled(t, "InvalidateChannelStats", mock.Anything, mock.Anything)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: bson.NewObjectID()}, nil)

	_, err := uc.Update(context.Background(), bson.NewObjectID(), videoID.Hex(),
		&dto.UpdateVideoRequest{Title: "new"}, "")

	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, model.StatusOf(err))
}

func TestUpdateRejectsEmptyRequest(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)
	ownerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: ownerID}, nil)

	_, err := uc.Update(context.Background(), ownerID, videoID.Hex(), &dto.UpdateVideoRequest{}, "")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err))
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	uc, videoRepo, _, _, _ := newVideoUsecase(t)
	ownerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: ownerID, Title: "old title", Description: "old desc"}, nil)
	videoRepo.On("UpdateTitleAndDescription", mock.Anything, videoID, "new title", "old desc").
		Return(&model.Video{ID: videoID, Owner: ownerID, Title: "new title", Description: "old desc"}, nil)

	updated, err := uc.Update(context.Background(), ownerID, videoID.Hex(),
		&dto.UpdateVideoRequest{Title: "new title"}, "")

	assert.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "old desc", updated.Description)
}

func TestDeleteCleansUpMediaAssets(t *testing.T) {
	uc, videoRepo, mediaHost, statsCache, videoEvents := newVideoUsecase(t)
	ownerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: ownerID, VideoPublicID: "v-1", ThumbnailPublicID: "t-1"}, nil)
	videoRepo.On("Delete", mock.Anything, videoID).Return(nil)
	mediaHost.On("Delete", mock.Anything, "v-1").Return(nil)
	mediaHost.On("Delete", mock.Anything, "t-1").Return(nil)
	statsCache.On("InvalidateChannelStats", mock.Anything, ownerID).Return()
	videoEvents.On("Publish", mock.Anything, "video.deleted", videoID, ownerID).Return(nil)

	err := uc.Delete(context.Background(), ownerID, videoID.Hex())
	assert.NoError(t, err)
	mediaHost.AssertExpectations(t)
	videoEvents.AssertExpectations(t)
}

func TestTogglePublishReturnsNewState(t *testing.T) {
	uc, videoRepo, _, _, videoEvents := newVideoUsecase(t)
	ownerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: ownerID, IsPublished: true}, nil)
	videoRepo.On("TogglePublishStatus", mock.Anything, videoID).Return(false, nil).Once()
	videoEvents.On("Publish", mock.Anything, "video.visibility-changed", videoID, ownerID).Return(nil)

	published, err := uc.TogglePublish(context.Background(), ownerID, videoID.Hex())
	assert.NoError(t, err)
	assert.False(t, published)

	videoRepo.On("TogglePublishStatus", mock.Anything, videoID).Return(true, nil).Once()
	published, err = uc.TogglePublish(context.Background(), ownerID, videoID.Hex())
	assert.NoError(t, err)
	assert.True(t, published)
}
