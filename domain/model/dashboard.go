package model

import "go.mongodb.org/mongo-driver/v2/bson"

// ChannelStats aggregates everything the dashboard shows about a channel.
// All counters are computed by joins at read time; nothing here is a stored
// counter that could drift.
type ChannelStats struct {
	ID               bson.ObjectID `json:"_id" bson:"_id"`
	Username         string        `json:"username" bson:"username"`
	FullName         string        `json:"fullName" bson:"fullName"`
	Email            string        `json:"email" bson:"email"`
	Avatar           string        `json:"avatar" bson:"avatar"`
	CoverImage       string        `json:"coverImage" bson:"coverImage"`
	SubscribersCount int64         `json:"subscribersCount" bson:"subscribersCount"`
	SubscribedTo     int64         `json:"subscribedToCount" bson:"subscribedToCount"`
	TotalVideos      int64         `json:"totalVideos" bson:"totalVideos"`
	TotalLikes       int64         `json:"totalLikes" bson:"totalLikes"`
	TotalViews       int64         `json:"totalViews" bson:"totalViews"`
}
