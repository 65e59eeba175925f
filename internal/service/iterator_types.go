package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"

	"mosque/internal/models"
	"mosque/internal/presentation"
)

// MessageIterator is a source of Kafka messages with manual commits.
// *kafkaclient.Consumer implements it.
type MessageIterator interface {
	// Messages is closed when the consumer stops.
	Messages() <-chan kafka.Message
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object at bucket/key.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// Engine receives what the feed decodes. *presentation.Engine implements it.
type Engine interface {
	HandleEvent(ev presentation.Event) (presentation.SessionState, error)
	SetMosques(mosques []models.Mosque)
}

// FeedItem is one decoded message. Exactly one of Event and Dataset is set.
type FeedItem struct {
	Event presentation.Event
	// Dataset is the reloaded collection named by Key.
	Dataset []models.Mosque
	Key     string
	// Notification is the storage event that announced Dataset.
	Notification *notification.Event
}
