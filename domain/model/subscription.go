package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscription is an edge document; its existence IS the subscribed state.
type Subscription struct {
	ID         bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Subscriber bson.ObjectID `json:"subscriber" bson:"subscriber"`
	Channel    bson.ObjectID `json:"channel" bson:"channel"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}

// SubscriberEntry is a channel-subscribers list row.
type SubscriberEntry struct {
	ID         bson.ObjectID `json:"_id" bson:"_id"`
	Subscriber *OwnerInfo    `json:"subscriber" bson:"subscriber"`
}

// SubscribedChannelEntry is a subscribed-channels list row.
type SubscribedChannelEntry struct {
	ID      bson.ObjectID `json:"_id" bson:"_id"`
	Channel *OwnerInfo    `json:"channel" bson:"channel"`
}
