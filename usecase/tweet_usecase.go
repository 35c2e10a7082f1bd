package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type ITweetUsecase interface {
	Create(ctx context.Context, ownerID bson.ObjectID, req *dto.TweetRequest) (*model.Tweet, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.TweetWithOwner, error)
	Update(ctx context.Context, ownerID bson.ObjectID, tweetID string, req *dto.TweetRequest) (*model.Tweet, error)
	Delete(ctx context.Context, ownerID bson.ObjectID, tweetID string) error
}

type TweetUsecase struct {
	tweetRepository repository.ITweet
	userRepository  repository.IUser
}

func NewTweetUsecase(tweetRepository repository.ITweet, userRepository repository.IUser) ITweetUsecase {
	return &TweetUsecase{
		tweetRepository: tweetRepository,
		userRepository:  userRepository,
	}
}

func (u *TweetUsecase) Create(ctx context.Context, ownerID bson.ObjectID, req *dto.TweetRequest) (*model.Tweet, error) {
	return u.tweetRepository.Create(ctx, &model.Tweet{
		Content:   req.Content,
		Owner:     ownerID,
		CreatedAt: utils.GetCurrentTime(),
	})
}

func (u *TweetUsecase) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.TweetWithOwner, error) {
	if _, err := u.userRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.tweetRepository.ListByOwner(ctx, userID)
}

func (u *TweetUsecase) Update(ctx context.Context, ownerID bson.ObjectID, tweetID string, req *dto.TweetRequest) (*model.Tweet, error) {
	tweet, err := u.ownedTweet(ctx, ownerID, tweetID)
	if err != nil {
		return nil, err
	}
	return u.tweetRepository.UpdateContent(ctx, tweet.ID, req.Content)
}

func (u *TweetUsecase) Delete(ctx context.Context, ownerID bson.ObjectID, tweetID string) error {
	tweet, err := u.ownedTweet(ctx, ownerID, tweetID)
	if err != nil {
		return err
	}
	return u.tweetRepository.Delete(ctx, tweet.ID)
}

func (u *TweetUsecase) ownedTweet(ctx context.Context, ownerID bson.ObjectID, tweetID string) (*model.Tweet, error) {
	id, err := bson.ObjectIDFromHex(tweetID)
	if err != nil {
		return nil, model.BadRequest("invalid tweet id")
	}
	tweet, err := u.tweetRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != ownerID {
		return nil, model.Forbidden("you are not the owner of this tweet")
	}
	return tweet, nil
}
