package repository

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/query"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IVideo interface {
	Create(ctx context.Context, video *model.Video) (*model.Video, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	GetDetails(ctx context.Context, id bson.ObjectID) (*model.VideoDetails, error)
	// List runs the feed pipeline: filter, sort, cursor-bound page, owner join.
	List(ctx context.Context, opts query.ListOptions) (query.Page[model.VideoWithOwner], error)
	Count(ctx context.Context, opts query.ListOptions) (int64, error)
	UpdateTitleAndDescription(ctx context.Context, id bson.ObjectID, title, description string) (*model.Video, error)
	UpdateThumbnail(ctx context.Context, id bson.ObjectID, url, publicID string) (*model.Video, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// TogglePublishStatus atomically flips isPublished and returns the new value.
	TogglePublishStatus(ctx context.Context, id bson.ObjectID) (bool, error)
	// RecordView counts a view once per viewer: it atomically adds the viewer
	// to viewedBy and bumps the counter only when the viewer was absent.
	// The bool reports whether this call counted.
	RecordView(ctx context.Context, videoID, viewerID bson.ObjectID) (int64, bool, error)
}
