// Package kafkaclient wraps a kafka-go reader in a channel based consumer with
// manual offset commits.
package kafkaclient

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader is the part of *kafka.Reader the consumer uses.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads messages on its own goroutine and hands them out through
// Messages. Offsets are only committed through CommitOffset.
type Consumer struct {
	reader   Reader
	backoff  time.Duration
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	messages chan kafka.Message
}

// NewConsumer creates a consumer for topic in group on a single broker.
func NewConsumer(topic, groupID, broker string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Offsets are committed explicitly after the event was applied.
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       1e6,
		MaxWait:        500 * time.Millisecond,
	})
	return newConsumer(reader)
}

func newConsumer(r Reader) *Consumer {
	return &Consumer{
		reader:   r,
		backoff:  time.Second,
		done:     make(chan struct{}),
		messages: make(chan kafka.Message),
	}
}

func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messages
}

func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// Start runs the read loop until ctx is done, Stop is called or the reader
// is closed. The Messages channel is closed when the loop exits.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messages)

		log.Println("Starting Kafka consumer loop...")
		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-c.done:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
			}

			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					log.Printf("Kafka reader finished: %v", err)
					return
				}
				log.Printf("Error reading message: %v", err)
				select {
				case <-time.After(c.backoff):
				case <-ctx.Done():
					return
				case <-c.done:
					return
				}
				continue
			}

			select {
			case c.messages <- msg:
				log.Printf("Message received: topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}()
}

// Stop ends the read loop, waits for it and closes the reader. It is safe to
// call more than once.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		log.Println("Attempting to stop Kafka consumer...")
		close(c.done)
		c.wg.Wait()
		if err := c.reader.Close(); err != nil {
			log.Printf("Failed to close Kafka reader: %v", err)
		}
		log.Println("Kafka consumer stopped gracefully.")
	})
}
