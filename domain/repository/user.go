package repository

import (
	"context"

	"vidtube/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IUser interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetByUserName(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error
	SetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
	UpdateAccountDetails(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error)
	AddToWatchHistory(ctx context.Context, userID, videoID bson.ObjectID) error
	GetWatchHistory(ctx context.Context, userID bson.ObjectID) ([]model.VideoWithOwner, error)
	// GetChannelProfile resolves the public channel page; requesterID drives
	// the isSubscribed derivation and is always passed in explicitly.
	GetChannelProfile(ctx context.Context, username string, requesterID bson.ObjectID) (*model.ChannelProfile, error)
}
