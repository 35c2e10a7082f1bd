package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Video is the video document. VideoFile and Thumbnail are media host URLs;
// the matching public ids are kept so the assets can be deleted later.
type Video struct {
	ID                bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	VideoFile         string          `json:"videoFile" bson:"videoFile"`
	Thumbnail         string          `json:"thumbnail" bson:"thumbnail"`
	VideoPublicID     string          `json:"-" bson:"videoPublicId"`
	ThumbnailPublicID string          `json:"-" bson:"thumbnailPublicId"`
	Title             string          `json:"title" bson:"title"`
	Description       string          `json:"description" bson:"description"`
	Duration          float64         `json:"duration" bson:"duration"`
	Views             int64           `json:"views" bson:"views"`
	IsPublished       bool            `json:"isPublished" bson:"isPublished"`
	Owner             bson.ObjectID   `json:"owner" bson:"owner"`
	ViewedBy          []bson.ObjectID `json:"-" bson:"viewedBy"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// VideoWithOwner is a feed row: the video joined with its (possibly absent) owner.
type VideoWithOwner struct {
	ID          bson.ObjectID `json:"_id" bson:"_id"`
	VideoFile   string        `json:"videoFile" bson:"videoFile"`
	Thumbnail   string        `json:"thumbnail" bson:"thumbnail"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Duration    float64       `json:"duration" bson:"duration"`
	Views       int64         `json:"views" bson:"views"`
	IsPublished bool          `json:"isPublished" bson:"isPublished"`
	Owner       *OwnerInfo    `json:"owner" bson:"owner"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

// VideoDetails is the single-video read model: owner enriched with its
// subscriber count plus the read-time like count.
type VideoDetails struct {
	ID          bson.ObjectID     `json:"_id" bson:"_id"`
	VideoFile   string            `json:"videoFile" bson:"videoFile"`
	Thumbnail   string            `json:"thumbnail" bson:"thumbnail"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description" bson:"description"`
	Duration    float64           `json:"duration" bson:"duration"`
	Views       int64             `json:"views" bson:"views"`
	IsPublished bool              `json:"isPublished" bson:"isPublished"`
	Owner       *ChannelOwnerInfo `json:"owner" bson:"owner"`
	TotalLikes  int64             `json:"totalLikes" bson:"totalLikes"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
}
