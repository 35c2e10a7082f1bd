package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IPlaylist interface {
	Create(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.PlaylistSummary, error)
	GetDetails(ctx context.Context, id bson.ObjectID) (*model.PlaylistDetails, error)
	GetVideos(ctx context.Context, id bson.ObjectID) (*model.PlaylistVideos, error)
	// AddVideo reports false when the video was already in the playlist.
	AddVideo(ctx context.Context, playlistID, videoID bson.ObjectID) (bool, error)
	// RemoveVideo reports false when the video was not in the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID bson.ObjectID) (bool, error)
	Update(ctx context.Context, id bson.ObjectID, name, description string) (*model.Playlist, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
