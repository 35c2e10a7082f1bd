package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content   string        `json:"content" bson:"content"`
	Video     bson.ObjectID `json:"video" bson:"video"`
	Owner     bson.ObjectID `json:"owner" bson:"owner"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// CommentWithOwner is a comment row joined with its owner and like count.
type CommentWithOwner struct {
	ID         bson.ObjectID `json:"_id" bson:"_id"`
	Content    string        `json:"content" bson:"content"`
	Owner      *OwnerInfo    `json:"owner" bson:"owner"`
	TotalLikes int64         `json:"totalCommentLikes" bson:"totalCommentLikes"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}
