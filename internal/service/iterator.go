// Package service connects the Kafka feed to the presentation engine. A
// message is either a session event such as {"type":"radius_changed",...} or
// a MinIO bucket notification announcing a new dataset object, which is
// loaded and swapped in.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"

	"mosque/internal/keys"
	"mosque/internal/models"
	"mosque/internal/presentation"
)

// ErrIgnored marks notifications for objects that are not datasets.
var ErrIgnored = errors.New("not a dataset object")

// Feed turns Kafka messages into engine input: session events are applied
// directly and object notifications reload the dataset.
type Feed struct {
	messages MessageIterator
	loader   LoaderFunc[[]models.Mosque]
	prepare  func(ctx context.Context, mosques []models.Mosque) []models.Mosque
}

// NewFeed builds a feed. prepare, when not nil, runs over every loaded
// dataset before it reaches the engine.
func NewFeed(messages MessageIterator, loader LoaderFunc[[]models.Mosque], prepare func(context.Context, []models.Mosque) []models.Mosque) *Feed {
	return &Feed{messages: messages, loader: loader, prepare: prepare}
}

type envelope struct {
	Type    string            `json:"type"`
	Records []json.RawMessage `json:"Records"`
}

// Decode turns one message into a FeedItem, loading the dataset a storage
// notification points at.
func (f *Feed) Decode(ctx context.Context, msg kafka.Message) (*FeedItem, error) {
	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, fmt.Errorf("error unmarshalling message: %w", err)
	}

	if len(env.Records) == 0 {
		ev, err := presentation.DecodeEvent(msg.Value)
		if err != nil {
			return nil, err
		}
		return &FeedItem{Event: ev}, nil
	}

	var info notification.Info
	if err := json.Unmarshal(msg.Value, &info); err != nil {
		return nil, fmt.Errorf("error unmarshalling notification: %w", err)
	}
	record := info.Records[len(info.Records)-1]
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return nil, fmt.Errorf("error decoding object key %q: %w", record.S3.Object.Key, err)
	}
	if !keys.IsDataset(key) {
		return nil, fmt.Errorf("%w: %s", ErrIgnored, key)
	}
	if f.loader == nil {
		return nil, fmt.Errorf("no loader for dataset %s", key)
	}

	mosques, err := f.loader(ctx, record.S3.Bucket.Name, key)
	if err != nil {
		return nil, fmt.Errorf("error loading dataset %s: %w", key, err)
	}
	if f.prepare != nil {
		mosques = f.prepare(ctx, mosques)
	}
	return &FeedItem{Dataset: mosques, Key: key, Notification: &record}, nil
}

// Run applies every message to engine until the message channel closes.
//
// Each message is committed once it was handled. Messages that cannot be
// decoded, notifications for other objects and events the engine rejects are
// logged and committed like the rest, so they are not redelivered. Kafka
// commits per partition offset, so leaving one uncommitted would not hold it
// back once a later message on the same partition commits.
func (f *Feed) Run(ctx context.Context, engine Engine) {
	for msg := range f.messages.Messages() {
		item, err := f.Decode(ctx, msg)
		switch {
		case errors.Is(err, ErrIgnored):
			log.Printf("Skipping notification: %v", err)
		case err != nil:
			log.Printf("Error decoding message at offset %d: %v", msg.Offset, err)
		case item.Event != nil:
			if _, err := engine.HandleEvent(item.Event); err != nil {
				log.Printf("Event %s rejected: %v", presentation.EventType(item.Event), err)
			}
		default:
			engine.SetMosques(item.Dataset)
			log.Printf("Reloaded dataset %s with %d mosques", item.Key, len(item.Dataset))
		}

		if err := f.messages.CommitOffset(ctx, msg); err != nil {
			log.Printf("Failed to commit offset: %v", err)
		}
	}
}
