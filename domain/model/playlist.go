package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Playlist holds an ordered list of video references; duplicates are kept
// out with $addToSet on write.
type Playlist struct {
	ID          bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description" bson:"description"`
	Videos      []bson.ObjectID `json:"videos" bson:"videos"`
	Owner       bson.ObjectID   `json:"owner" bson:"owner"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistSummary is the list row: name, cover thumbnail, video count.
type PlaylistSummary struct {
	ID          bson.ObjectID `json:"_id" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Thumbnail   string        `json:"thumbnail" bson:"thumbnail"`
	TotalVideos int64         `json:"totalVideos" bson:"totalVideos"`
}

// PlaylistDetails adds the owner to the summary.
type PlaylistDetails struct {
	ID          bson.ObjectID `json:"_id" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Thumbnail   string        `json:"thumbnail" bson:"thumbnail"`
	TotalVideos int64         `json:"totalVideos" bson:"totalVideos"`
	Owner       *OwnerInfo    `json:"owner" bson:"owner"`
}

// PlaylistVideos is the full expansion: every video joined with its owner.
type PlaylistVideos struct {
	ID     bson.ObjectID    `json:"_id" bson:"_id"`
	Videos []VideoWithOwner `json:"videos" bson:"videos"`
}
