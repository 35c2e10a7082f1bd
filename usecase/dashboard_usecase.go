package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type IDashboardUsecase interface {
	GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, error)
	GetChannelVideos(ctx context.Context, ownerID bson.ObjectID, req *dto.VideoListRequest) (*model.ListPayload, error)
}

type DashboardUsecase struct {
	dashboardRepository repository.IDashboard
	videoRepository     repository.IVideo
	statsCache          repository.IStatsCache
}

func NewDashboardUsecase(
	dashboardRepository repository.IDashboard,
	videoRepository repository.IVideo,
	statsCache repository.IStatsCache,
) IDashboardUsecase {
	return &DashboardUsecase{
		dashboardRepository: dashboardRepository,
		videoRepository:     videoRepository,
		statsCache:          statsCache,
	}
}

// GetChannelStats serves from the cache when possible; writes that affect
// the numbers invalidate the entry, so a hit is never stale beyond the TTL.
func (u *DashboardUsecase) GetChannelStats(ctx context.Context, userID bson.ObjectID) (*model.ChannelStats, error) {
	if stats, ok := u.statsCache.GetChannelStats(ctx, userID); ok {
		return stats, nil
	}
	stats, err := u.dashboardRepository.GetChannelStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.statsCache.SetChannelStats(ctx, userID, stats)
	return stats, nil
}

// GetChannelVideos lists the caller's own videos, drafts included.
func (u *DashboardUsecase) GetChannelVideos(ctx context.Context, ownerID bson.ObjectID, req *dto.VideoListRequest) (*model.ListPayload, error) {
	opts, err := buildListOptions(req)
	if err != nil {
		return nil, err
	}
	opts.Owner = ownerID
	opts.PublishedOnly = false
	opts.Search = ""

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
