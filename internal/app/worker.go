package app

import (
	"context"
	"errors"

	"go-timeconsole/internal/config"
	"go-timeconsole/internal/messaging/kafka"
	"go-timeconsole/internal/messaging/kafka/producer"
	"go-timeconsole/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if !cfg.OutboxEnabled() {
		return errors.New("DB_HOST is required")
	}
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	sqlDB, err := openOutboxDB(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(sqlDB), kafkaWriter, logger, cfg.OutboxPoll)

	logger.Info("worker shutting down")
	return nil
}
