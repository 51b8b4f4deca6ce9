package consumer

import (
	"context"
	"errors"
	"fmt"

	"go-timeconsole/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrSkip marks a message that can never succeed. It is committed and
// not retried.
var ErrSkip = errors.New("skip message")

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// HandlerFunc processes one message. Returning an error other than ErrSkip
// leaves the message uncommitted.
type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// Consumer fetches messages from one topic and deduplicates them through
// the inbox before handing them to its handler.
type Consumer struct {
	name   string
	reader MessageReader
	inbox  kafka.InboxRepository
	handle HandlerFunc
	logger *zap.Logger
}

// New builds a consumer. inbox may be nil when redelivery is harmless.
func New(name string, reader MessageReader, inbox kafka.InboxRepository, handle HandlerFunc, logger *zap.Logger) *Consumer {
	return &Consumer{
		name:   name,
		reader: reader,
		inbox:  inbox,
		handle: handle,
		logger: logger.Named("kafka.consumer." + name),
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopped")
				return
			}
			c.logger.Error("fetch message failed", zap.Error(err))
			continue
		}

		if c.process(ctx, msg) {
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			}
		}
	}
}

// process reports whether msg should be committed.
func (c *Consumer) process(ctx context.Context, msg kafkago.Message) bool {
	eventID := EventID(msg)
	log := c.logger.With(zap.String("event_id", eventID), zap.String("topic", msg.Topic))

	if c.inbox != nil {
		if err := c.inbox.MarkProcessed(ctx, c.name, eventID); err != nil {
			if errors.Is(err, kafka.ErrAlreadyProcessed) {
				log.Info("event already processed, skipping")
				return true
			}
			log.Error("mark event processed failed", zap.Error(err))
			return false
		}
	}

	err := c.handle(ctx, msg)
	switch {
	case err == nil:
		log.Info("event handled")
		return true
	case errors.Is(err, ErrSkip):
		log.Warn("event skipped", zap.Error(err))
		return true
	}

	log.Error("handle event failed", zap.Error(err))
	if c.inbox != nil {
		if relErr := c.inbox.Release(ctx, c.name, eventID); relErr != nil {
			log.Error("release event failed", zap.Error(relErr))
		}
	}
	return false
}

// EventID prefers the outbox id header and falls back to the message
// coordinates.
func EventID(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == kafka.HeaderEventID && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
}
