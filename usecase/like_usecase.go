package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ILikeUsecase interface {
	ToggleVideoLike(ctx context.Context, userID bson.ObjectID, videoID string) (bool, error)
	ToggleCommentLike(ctx context.Context, userID bson.ObjectID, commentID string) (bool, error)
	ToggleTweetLike(ctx context.Context, userID bson.ObjectID, tweetID string) (bool, error)
	GetLikedVideos(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error)
}

type LikeUsecase struct {
	likeRepository    repository.ILike
	videoRepository   repository.IVideo
	commentRepository repository.IComment
	tweetRepository   repository.ITweet
	statsCache        repository.IStatsCache
}

func NewLikeUsecase(
	likeRepository repository.ILike,
	videoRepository repository.IVideo,
	commentRepository repository.IComment,
	tweetRepository repository.ITweet,
	statsCache repository.IStatsCache,
) ILikeUsecase {
	return &LikeUsecase{
		likeRepository:    likeRepository,
		videoRepository:   videoRepository,
		commentRepository: commentRepository,
		tweetRepository:   tweetRepository,
		statsCache:        statsCache,
	}
}

// ToggleVideoLike flips the like and invalidates the video owner's cached
// dashboard stats, since totalLikes is derived from this set.
func (u *LikeUsecase) ToggleVideoLike(ctx context.Context, userID bson.ObjectID, videoID string) (bool, error) {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return false, model.BadRequest("invalid video id")
	}
	video, err := u.videoRepository.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	liked, err := u.likeRepository.Toggle(ctx, userID, model.LikeTargetVideo, id)
	if err != nil {
		return false, err
	}
	u.statsCache.InvalidateChannelStats(ctx, video.Owner)
	return liked, nil
}

func (u *LikeUsecase) ToggleCommentLike(ctx context.Context, userID bson.ObjectID, commentID string) (bool, error) {
	id, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return false, model.BadRequest("invalid comment id")
	}
	if _, err := u.commentRepository.GetByID(ctx, id); err != nil {
		return false, err
	}
	return u.likeRepository.Toggle(ctx, userID, model.LikeTargetComment, id)
}

func (u *LikeUsecase) ToggleTweetLike(ctx context.Context, userID bson.ObjectID, tweetID string) (bool, error) {
	id, err := bson.ObjectIDFromHex(tweetID)
	if err != nil {
		return false, model.BadRequest("invalid tweet id")
	}
	if _, err := u.tweetRepository.GetByID(ctx, id); err != nil {
		return false, err
	}
	return u.likeRepository.Toggle(ctx, userID, model.LikeTargetTweet, id)
}

func (u *LikeUsecase) GetLikedVideos(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error) {
	return u.likeRepository.GetLikedVideos(ctx, userID)
}
