package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg *sarama.ConsumerMessage) error
}

type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	logger  *slog.Logger
	// Backoff spaces handler retries for one message before the claim is given up.
	Backoff []time.Duration
}

func NewConsumer(brokers []string, groupID string, cfg *sarama.Config, handler MessageHandler, logger *slog.Logger) (*Consumer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Version = sarama.V2_5_0_0
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	g, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}
	return &Consumer{group: g, handler: handler, logger: logger}, nil
}

// Run consumes topics until ctx is cancelled, rejoining the group after rebalances.
func (c *Consumer) Run(ctx context.Context, topics []string) error {
	for {
		if err := c.group.Consume(ctx, topics, consumerGroupHandler{handler: c.handler, logger: c.logger, backoff: c.Backoff}); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type consumerGroupHandler struct {
	handler MessageHandler
	logger  *slog.Logger
	backoff []time.Duration
}

func (h consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks messages in order. A message that still fails after the retries ends
// the claim without being marked, so later offsets are never committed past it and the
// group resumes from it when Run rejoins.
func (h consumerGroupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.handle(sess.Context(), message); err != nil {
			return err
		}
		sess.MarkMessage(message, "")
	}
	return nil
}

func (h consumerGroupHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	for attempt := 0; ; attempt++ {
		err := h.handler.Handle(ctx, message)
		if err == nil {
			return nil
		}
		if h.logger != nil {
			h.logger.ErrorContext(ctx, "kafka message failed", "topic", message.Topic, "partition", message.Partition, "offset", message.Offset, "attempt", attempt+1, "error", err)
		}
		if attempt >= len(h.backoff) {
			return err
		}
		timer := time.NewTimer(h.backoff[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
