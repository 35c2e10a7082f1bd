package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/pubsub"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/infrastructure/logger"
)

const (
	EventVideoPublished  = "video.published"
	EventVideoDeleted    = "video.deleted"
	EventVideoVisibility = "video.visibility-changed"
)

type VideoEvent struct {
	Type       string    `json:"type"`
	VideoID    string    `json:"videoId"`
	OwnerID    string    `json:"ownerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type IVideoEvents interface {
	Publish(ctx context.Context, eventType string, videoID, ownerID bson.ObjectID) error
}

type VideoEvents struct {
	client *pubsub.Client
	topic  string
}

// NewVideoEvents wraps a Pub/Sub client for video lifecycle notifications.
// A nil client is allowed; publishing then becomes a no-op so the API keeps
// working when the broker is not configured.
func NewVideoEvents(client *pubsub.Client, topic string) IVideoEvents {
	return &VideoEvents{client: client, topic: topic}
}

func (v *VideoEvents) Publish(
	ctx context.Context,
	eventType string,
	videoID, ownerID bson.ObjectID,
) error {
	if v.client == nil {
		return nil
	}

	payload, err := json.Marshal(VideoEvent{
		Type:       eventType,
		VideoID:    videoID.Hex(),
		OwnerID:    ownerID.Hex(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	topic := v.client.Topic(v.topic)

	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		logger.GetLogger().WithField("topic", v.topic).Info("Topic doesn't exist - creating it")
		if _, err = v.client.CreateTopic(ctx, v.topic); err != nil {
			return err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}

	logger.GetLogger().
		WithField("server ID", serverID).
		WithField("event", eventType).
		Info("Video event published")
	return nil
}
