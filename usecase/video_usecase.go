package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/query"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/pubsub"
	"vidtube/infrastructure/utils"
)

// maxListLimit caps a single feed page.
const maxListLimit = 50

// videoSortFields are the only sort keys the feed accepts; everything is
// backed by a composite (field, _id) index.
var videoSortFields = map[string]struct{}{
	"views":     {},
	"createdAt": {},
	"duration":  {},
	"title":     {},
}

type IVideoUsecase interface {
	List(ctx context.Context, req *dto.VideoListRequest) (*model.ListPayload, error)
	Publish(ctx context.Context, ownerID bson.ObjectID, req *dto.PublishVideoRequest, videoPath, thumbnailPath string) (*model.Video, error)
	Get(ctx context.Context, videoID string, viewerID bson.ObjectID) (*model.VideoDetails, error)
	Update(ctx context.Context, ownerID bson.ObjectID, videoID string, req *dto.UpdateVideoRequest, thumbnailPath string) (*model.Video, error)
	Delete(ctx context.Context, ownerID bson.ObjectID, videoID string) error
	TogglePublish(ctx context.Context, ownerID bson.ObjectID, videoID string) (bool, error)
}

type VideoUsecase struct {
	videoRepository repository.IVideo
	mediaHost       repository.IMediaHost
	statsCache      repository.IStatsCache
	videoEvents     pubsub.IVideoEvents
}

func NewVideoUsecase(
	videoRepository repository.IVideo,
	mediaHost repository.IMediaHost,
	statsCache repository.IStatsCache,
	videoEvents pubsub.IVideoEvents,
) IVideoUsecase {
	return &VideoUsecase{
		videoRepository: videoRepository,
		mediaHost:       mediaHost,
		statsCache:      statsCache,
		videoEvents:     videoEvents,
	}
}

// buildListOptions validates the request and decodes the continuation
// cursor. A cursor minted for a different ordering is rejected instead of
// silently producing a skewed page.
func buildListOptions(req *dto.VideoListRequest) (query.ListOptions, error) {
	opts := query.ListOptions{
		Limit:         req.Limit,
		SortBy:        req.SortBy,
		Direction:     query.ParseSortDirection(req.SortType),
		Search:        req.Query,
		WithTotal:     req.WithTotal,
		PublishedOnly: true,
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if _, ok := videoSortFields[opts.SortBy]; !ok {
		return opts, model.BadRequest("unsupported sort field: " + opts.SortBy)
	}
	if req.UserID != "" {
		ownerID, err := bson.ObjectIDFromHex(req.UserID)
		if err != nil {
			return opts, model.BadRequest("invalid userId")
		}
		opts.Owner = ownerID
	}
	if req.LastVideoID != "" {
		cursor, err := query.DecodeCursor(req.LastVideoID)
		if err != nil {
			return opts, model.BadRequest("invalid lastVideoId cursor")
		}
		if err := cursor.Validate(opts.SortBy, opts.Direction); err != nil {
			return opts, model.BadRequest(err.Error())
		}
		opts.Cursor = cursor
	}
	return opts, nil
}

func (u *VideoUsecase) List(ctx context.Context, req *dto.VideoListRequest) (*model.ListPayload, error) {
	opts, err := buildListOptions(req)
	if err != nil {
		return nil, err
	}

	page, err := u.videoRepository.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	payload := &model.ListPayload{
		Data:        page.Items,
		HasMore:     page.HasMore,
		LastVideoID: page.NextCursor,
	}
	if opts.WithTotal {
		total, err := u.videoRepository.Count(ctx, opts)
		if err != nil {
			return nil, err
		}
		payload.TotalVideos = &total
	}
	return payload, nil
}

// Publish uploads the video file and thumbnail, then inserts the document.
// Assets already pushed to the media host are deleted again when a later
// step fails.
func (u *VideoUsecase) Publish(ctx context.Context, ownerID bson.ObjectID, req *dto.PublishVideoRequest, videoPath, thumbnailPath string) (*model.Video, error) {
	var uploaded []string
	rollback := func() {
		for _, publicID := range uploaded {
			if err := u.mediaHost.Delete(ctx, publicID); err != nil {
				logger.GetLogger().WithField("publicId", publicID).
					WithField("error", err).Error("Error while rolling back upload")
			}
		}
	}

	videoAsset, err := u.mediaHost.Upload(ctx, videoPath)
	if err != nil {
		return nil, model.Internal("failed to upload video file", err)
	}
	uploaded = append(uploaded, videoAsset.PublicID)

	thumbAsset, err := u.mediaHost.Upload(ctx, thumbnailPath)
	if err != nil {
		rollback()
		return nil, model.Internal("failed to upload thumbnail", err)
	}
	uploaded = append(uploaded, thumbAsset.PublicID)

	now := utils.GetCurrentTime()
	video, err := u.videoRepository.Create(ctx, &model.Video{
		VideoFile:         videoAsset.URL,
		Thumbnail:         thumbAsset.URL,
		VideoPublicID:     videoAsset.PublicID,
		ThumbnailPublicID: thumbAsset.PublicID,
		Title:             req.Title,
		Description:       req.Description,
		Duration:          videoAsset.Duration,
		Views:             0,
		IsPublished:       true,
		Owner:             ownerID,
		ViewedBy:          []bson.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		rollback()
		return nil, err
	}

	u.statsCache.InvalidateChannelStats(ctx, ownerID)
	if err := u.videoEvents.Publish(ctx, pubsub.EventVideoPublished, video.ID, ownerID); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while publishing video event")
	}
	return video, nil
}

// Get resolves the detail read model and, when the viewer is known, counts
// the view (once per viewer) and records watch history.
func (u *VideoUsecase) Get(ctx context.Context, videoID string, viewerID bson.ObjectID) (*model.VideoDetails, error) {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, model.BadRequest("invalid video id")
	}

	details, err := u.videoRepository.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewerID.IsZero() {
		views, counted, err := u.videoRepository.RecordView(ctx, id, viewerID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while recording view")
		} else if counted {
			details.Views = views
			u.statsCache.InvalidateChannelStats(ctx, details.Owner.ID)
		}
	}
	return details, nil
}

func (u *VideoUsecase) Update(ctx context.Context, ownerID bson.ObjectID, videoID string, req *dto.UpdateVideoRequest, thumbnailPath string) (*model.Video, error) {
	video, err := u.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}
	if req.Title == "" && req.Description == "" && thumbnailPath == "" {
		return nil, model.BadRequest("nothing to update")
	}

	updated := video
	if req.Title != "" || req.Description != "" {
		title := req.Title
		if title == "" {
			title = video.Title
		}
		description := req.Description
		if description == "" {
			description = video.Description
		}
		updated, err = u.videoRepository.UpdateTitleAndDescription(ctx, video.ID, title, description)
		if err != nil {
			return nil, err
		}
	}

	if thumbnailPath != "" {
		asset, err := u.mediaHost.Upload(ctx, thumbnailPath)
		if err != nil {
			return nil, model.Internal("failed to upload thumbnail", err)
		}
		oldPublicID := video.ThumbnailPublicID
		updated, err = u.videoRepository.UpdateThumbnail(ctx, video.ID, asset.URL, asset.PublicID)
		if err != nil {
			return nil, err
		}
		if oldPublicID != "" {
			if err := u.mediaHost.Delete(ctx, oldPublicID); err != nil {
				logger.GetLogger().WithField("publicId", oldPublicID).
					WithField("error", err).Error("Error while deleting old thumbnail")
			}
		}
	}
	return updated, nil
}

// Delete removes the document first; asset cleanup on the media host is
// best effort afterwards.
func (u *VideoUsecase) Delete(ctx context.Context, ownerID bson.ObjectID, videoID string) error {
	video, err := u.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return err
	}
	if err := u.videoRepository.Delete(ctx, video.ID); err != nil {
		return err
	}

	for _, publicID := range []string{video.VideoPublicID, video.ThumbnailPublicID} {
		if publicID == "" {
			continue
		}
		if err := u.mediaHost.Delete(ctx, publicID); err != nil {
			logger.GetLogger().WithField("publicId", publicID).
				WithField("error", err).Error("Error while deleting media asset")
		}
	}

	u.statsCache.InvalidateChannelStats(ctx, ownerID)
	if err := u.videoEvents.Publish(ctx, pubsub.EventVideoDeleted, video.ID, ownerID); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while publishing video event")
	}
	return nil
}

func (u *VideoUsecase) TogglePublish(ctx context.Context, ownerID bson.ObjectID, videoID string) (bool, error) {
	video, err := u.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return false, err
	}
	published, err := u.videoRepository.TogglePublishStatus(ctx, video.ID)
	if err != nil {
		return false, err
	}
	if err := u.videoEvents.Publish(ctx, pubsub.EventVideoVisibility, video.ID, ownerID); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while publishing video event")
	}
	return published, nil
}

// ownedVideo loads the video and enforces that the caller owns it.
func (u *VideoUsecase) ownedVideo(ctx context.Context, ownerID bson.ObjectID, videoID string) (*model.Video, error) {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, model.BadRequest("invalid video id")
	}
	video, err := u.videoRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.Owner != ownerID {
		return nil, model.Forbidden("you are not the owner of this video")
	}
	return video, nil
}
