package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/wutsk/labreserve/config"
)

// Handler processes one fetched message. A non-nil return leaves the message
// uncommitted; consumption continues with the next one.
type Handler func(ctx context.Context, msg kafka.Message) error

type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	source messageSource
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{
		source: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.source == nil {
		return nil
	}
	return c.source.Close()
}

// Consume fetches and handles messages until ctx is canceled or the reader
// fails. Offsets commit only after the handler succeeds, so a handler failure
// never terminates the loop and the message stays uncommitted.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.source.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			continue
		}

		if err := c.source.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}
