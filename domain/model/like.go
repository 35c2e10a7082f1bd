package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like holds all of one user's likes in a single document; membership in a
// list is the liked state. A unique index on likedBy keeps it at most one
// document per user.
type Like struct {
	ID            bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	LikedBy       bson.ObjectID   `json:"likedBy" bson:"likedBy"`
	LikedVideos   []bson.ObjectID `json:"likedVideos" bson:"likedVideos"`
	LikedComments []bson.ObjectID `json:"likedComments" bson:"likedComments"`
	LikedTweets   []bson.ObjectID `json:"likedTweets" bson:"likedTweets"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// LikeTarget selects which of the three like sets a toggle operates on.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "likedVideos"
	LikeTargetComment LikeTarget = "likedComments"
	LikeTargetTweet   LikeTarget = "likedTweets"
)
