package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/query"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

var commentSortFields = map[string]struct{}{
	"createdAt": {},
}

type ICommentUsecase interface {
	Add(ctx context.Context, ownerID bson.ObjectID, videoID string, req *dto.CommentRequest) (*model.Comment, error)
	ListForVideo(ctx context.Context, videoID string, req *dto.CommentListRequest) (*model.ListPayload, error)
	Update(ctx context.Context, ownerID bson.ObjectID, commentID string, req *dto.CommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, ownerID bson.ObjectID, commentID string) error
}

type CommentUsecase struct {
	commentRepository repository.IComment
	videoRepository   repository.IVideo
}

func NewCommentUsecase(commentRepository repository.IComment, videoRepository repository.IVideo) ICommentUsecase {
	return &CommentUsecase{
		commentRepository: commentRepository,
		videoRepository:   videoRepository,
	}
}

func (u *CommentUsecase) Add(ctx context.Context, ownerID bson.ObjectID, videoID string, req *dto.CommentRequest) (*model.Comment, error) {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, model.BadRequest("invalid video id")
	}
	if _, err := u.videoRepository.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.commentRepository.Create(ctx, &model.Comment{
		Content:   req.Content,
		Video:     id,
		Owner:     ownerID,
		CreatedAt: utils.GetCurrentTime(),
	})
}

func (u *CommentUsecase) ListForVideo(ctx context.Context, videoID string, req *dto.CommentListRequest) (*model.ListPayload, error) {
	id, err := bson.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, model.BadRequest("invalid video id")
	}

	opts := query.ListOptions{
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		Direction: query.ParseSortDirection(req.SortType),
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if _, ok := commentSortFields[opts.SortBy]; !ok {
		return nil, model.BadRequest("unsupported sort field: " + opts.SortBy)
	}
	if req.LastVideoID != "" {
		cursor, err := query.DecodeCursor(req.LastVideoID)
		if err != nil {
			return nil, model.BadRequest("invalid lastVideoId cursor")
		}
		if err := cursor.Validate(opts.SortBy, opts.Direction); err != nil {
			return nil, model.BadRequest(err.Error())
		}
		opts.Cursor = cursor
	}

	page, err := u.commentRepository.ListForVideo(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	return &model.ListPayload{
		Data:        page.Items,
		HasMore:     page.HasMore,
		LastVideoID: page.NextCursor,
	}, nil
}

func (u *CommentUsecase) Update(ctx context.Context, ownerID bson.ObjectID, commentID string, req *dto.CommentRequest) (*model.Comment, error) {
	comment, err := u.ownedComment(ctx, ownerID, commentID)
	if err != nil {
		return nil, err
	}
	return u.commentRepository.UpdateContent(ctx, comment.ID, req.Content)
}

func (u *CommentUsecase) Delete(ctx context.Context, ownerID bson.ObjectID, commentID string) error {
	comment, err := u.ownedComment(ctx, ownerID, commentID)
	if err != nil {
		return err
	}
	return u.commentRepository.Delete(ctx, comment.ID)
}

func (u *CommentUsecase) ownedComment(ctx context.Context, ownerID bson.ObjectID, commentID string) (*model.Comment, error) {
	id, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, model.BadRequest("invalid comment id")
	}
	comment, err := u.commentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Owner != ownerID {
		return nil, model.Forbidden("you are not the owner of this comment")
	}
	return comment, nil
}
