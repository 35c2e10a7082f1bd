package repository

import (
	"context"

	"vidtube/domain/model"
)

// IMediaHost is the external media store that receives local files and
// serves them back by URL.
type IMediaHost interface {
	Upload(ctx context.Context, localPath string) (*model.MediaAsset, error)
	Delete(ctx context.Context, publicID string) error
}
