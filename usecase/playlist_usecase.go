package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type IPlaylistUsecase interface {
	Create(ctx context.Context, ownerID bson.ObjectID, req *dto.PlaylistRequest) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error)
	Get(ctx context.Context, playlistID string) (*model.PlaylistDetails, error)
	GetVideos(ctx context.Context, playlistID string) (*model.PlaylistVideos, error)
	AddVideo(ctx context.Context, ownerID bson.ObjectID, playlistID, videoID string) (bool, error)
	RemoveVideo(ctx context.Context, ownerID bson.ObjectID, playlistID, videoID string) (bool, error)
	Update(ctx context.Context, ownerID bson.ObjectID, playlistID string, req *dto.PlaylistRequest) (*model.Playlist, error)
	Delete(ctx context.Context, ownerID bson.ObjectID, playlistID string) error
}

type PlaylistUsecase struct {
	playlistRepository repository.IPlaylist
	videoRepository    repository.IVideo
	userRepository     repository.IUser
}

func NewPlaylistUsecase(
	playlistRepository repository.IPlaylist,
	videoRepository repository.IVideo,
	userRepository repository.IUser,
) IPlaylistUsecase {
	return &PlaylistUsecase{
		playlistRepository: playlistRepository,
		videoRepository:    videoRepository,
		userRepository:     userRepository,
	}
}

func (u *PlaylistUsecase) Create(ctx context.Context, ownerID bson.ObjectID, req *dto.PlaylistRequest) (*model.Playlist, error) {
	now := utils.GetCurrentTime()
	return u.playlistRepository.Create(ctx, &model.Playlist{
		Name:        req.Name,
		Description: req.Description,
		Videos:      []bson.ObjectID{},
		Owner:       ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (u *PlaylistUsecase) ListByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, model.BadRequest("invalid user id")
	}
	if _, err := u.userRepository.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.playlistRepository.ListByOwner(ctx, id)
}

func (u *PlaylistUsecase) Get(ctx context.Context, playlistID string) (*model.PlaylistDetails, error) {
	id, err := bson.ObjectIDFromHex(playlistID)
	if err != nil {
		return nil, model.BadRequest("invalid playlist id")
	}
	return u.playlistRepository.GetDetails(ctx, id)
}

func (u *PlaylistUsecase) GetVideos(ctx context.Context, playlistID string) (*model.PlaylistVideos, error) {
	id, err := bson.ObjectIDFromHex(playlistID)
	if err != nil {
		return nil, model.BadRequest("invalid playlist id")
	}
	return u.playlistRepository.GetVideos(ctx, id)
}

// AddVideo reports false when the video was already in the playlist; the
// write itself is idempotent.
func (u *PlaylistUsecase) AddVideo(ctx context.Context, ownerID bson.ObjectID, playlistID, videoID string) (bool, error) {
	playlist, err := u.ownedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return false, err
	}
	vid, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return false, model.BadRequest("invalid video id")
	}
	if _, err := u.videoRepository.GetByID(ctx, vid); err != nil {
		return false, err
	}
	return u.playlistRepository.AddVideo(ctx, playlist.ID, vid)
}

func (u *PlaylistUsecase) RemoveVideo(ctx context.Context, ownerID bson.ObjectID, playlistID, videoID string) (bool, error) {
	playlist, err := u.ownedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return false, err
	}
	vid, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return false, model.BadRequest("invalid video id")
	}
	return u.playlistRepository.RemoveVideo(ctx, playlist.ID, vid)
}

func (u *PlaylistUsecase) Update(ctx context.Context, ownerID bson.ObjectID, playlistID string, req *dto.PlaylistRequest) (*model.Playlist, error) {
	playlist, err := u.ownedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}
	return u.playlistRepository.Update(ctx, playlist.ID, req.Name, req.Description)
}

func (u *PlaylistUsecase) Delete(ctx context.Context, ownerID bson.ObjectID, playlistID string) error {
	playlist, err := u.ownedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return err
	}
	return u.playlistRepository.Delete(ctx, playlist.ID)
}

func (u *PlaylistUsecase) ownedPlaylist(ctx context.Context, ownerID bson.ObjectID, playlistID string) (*model.Playlist, error) {
	id, err := bson.ObjectIDFromHex(playlistID)
	if err != nil {
		return nil, model.BadRequest("invalid playlist id")
	}
	playlist, err := u.playlistRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.Owner != ownerID {
		return nil, model.Forbidden("you are not the owner of this playlist")
	}
	return playlist, nil
}
