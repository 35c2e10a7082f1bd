package model

import (
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the account document. Password and RefreshToken are write-side
// fields and never serialize to JSON; read models use OwnerInfo / ChannelProfile
// which do not carry them at all.
type User struct {
	ID           bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username     string          `json:"username" bson:"username"`
	Email        string          `json:"email" bson:"email"`
	FullName     string          `json:"fullName" bson:"fullName"`
	Avatar       string          `json:"avatar" bson:"avatar"`
	CoverImage   string          `json:"coverImage" bson:"coverImage"`
	WatchHistory []bson.ObjectID `json:"watchHistory" bson:"watchHistory"`
	Password     string          `json:"-" bson:"password"`
	RefreshToken string          `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// OwnerInfo is the allow-listed projection of a user attached to owned
// content (videos, comments, tweets, playlists).
type OwnerInfo struct {
	ID       bson.ObjectID `json:"_id" bson:"_id"`
	Username string        `json:"username" bson:"username"`
	FullName string        `json:"fullName" bson:"fullName"`
	Avatar   string        `json:"avatar" bson:"avatar"`
}

// ChannelOwnerInfo extends OwnerInfo with the read-time subscriber count.
type ChannelOwnerInfo struct {
	ID              bson.ObjectID `json:"_id" bson:"_id"`
	Username        string        `json:"username" bson:"username"`
	FullName        string        `json:"fullName" bson:"fullName"`
	Avatar          string        `json:"avatar" bson:"avatar"`
	SubscriberCount int64         `json:"subscriberCount" bson:"subscriberCount"`
}

// ChannelProfile is the public channel page read model.
type ChannelProfile struct {
	ID                        bson.ObjectID `json:"_id" bson:"_id"`
	Username                  string        `json:"username" bson:"username"`
	FullName                  string        `json:"fullName" bson:"fullName"`
	Email                     string        `json:"email" bson:"email"`
	Avatar                    string        `json:"avatar" bson:"avatar"`
	CoverImage                string        `json:"coverImage" bson:"coverImage"`
	SubscriberCount           int64         `json:"subscriberCount" bson:"subscriberCount"`
	ChannelsSubscribedToCount int64         `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool          `json:"isSubscribed" bson:"isSubscribed"`
}

// UserClaims is the JWT payload for access tokens.
type UserClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.StandardClaims
}
