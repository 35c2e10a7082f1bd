package repository

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/query"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IComment interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	ListForVideo(ctx context.Context, videoID bson.ObjectID, opts query.ListOptions) (query.Page[model.CommentWithOwner], error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
