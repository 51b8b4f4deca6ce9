package app

import (
	"context"
	"errors"
	"sync"

	"go-timeconsole/internal/bootstrap"
	"go-timeconsole/internal/config"
	"go-timeconsole/internal/events"
	"go-timeconsole/internal/messaging/kafka"
	"go-timeconsole/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer re-applies failed punch patches and audits decisions until
// ctx is cancelled.
func RunConsumer(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	if !cfg.OutboxEnabled() {
		return errors.New("DB_HOST is required")
	}

	inf, err := newPlatform(cfg, logger)
	if err != nil {
		return err
	}
	defer inf.Close()

	svc, err := buildServices(cfg, inf, logger)
	if err != nil {
		return err
	}
	inbox := kafka.NewInboxRepository(inf.sqlDB)

	retryReader := newReader(cfg, events.PunchPatchRetryTopic, cfg.ConsumerName)
	defer retryReader.Close()
	auditReader := newReader(cfg, events.AlterationDecidedTopic, cfg.ConsumerName+"-audit")
	defer auditReader.Close()

	consumers := []*consumer.Consumer{
		consumer.New("punch-patch-retry", retryReader, inbox, consumer.PunchPatchRetry(svc.alteration), logger),
		consumer.New("alteration-audit", auditReader, inbox, consumer.AlterationDecidedAudit(bootstrap.NewStdoutAuditLogger(logger)), logger),
	}

	var wg sync.WaitGroup
	for _, c := range consumers {
		wg.Add(1)
		go func(c *consumer.Consumer) {
			defer wg.Done()
			c.Run(ctx)
		}(c)
	}
	wg.Wait()

	logger.Info("consumer shutting down")
	return nil
}

func newReader(cfg config.Config, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
