package kafka_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"go-timeconsole/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("req-1", "punch_alteration", "alt_1", "alteration_decided", "topic.v1", map[string]string{"status": "approved"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"status":"approved"}`, string(event.Payload))

	_, err = kafka.NewOutboxEvent("req-1", "punch_alteration", "alt_1", "alteration_decided", "", map[string]string{})
	assert.EqualError(t, err, "outbox topic is required")
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event, err := kafka.NewOutboxEvent("req-1", "punch_alteration", "alt_1", "alteration_decided", "topic.v1", map[string]string{"a": "b"})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, "req-1", "punch_alteration", "alt_1", "alteration_decided", "topic.v1", event.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event, err := kafka.NewOutboxEvent("", "punch_alteration", "alt_1", "punch_patch_retry", "retry.v1", map[string]string{"a": "b"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, kafka.NewOutboxRepository(db).WithTx(tx).Create(context.Background(), event))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	due := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("evt-1", "req-1", "punch_alteration", "alt_1", "alteration_decided", "topic.v1", []byte(`{}`), "pending", 0, due).
		AddRow("evt-2", "", "punch_alteration", "alt_2", "punch_patch_retry", "retry.v1", []byte(`{}`), "failed", 2, due)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.Equal(t, due, events[1].NextRetryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedTruncatesReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reason := strings.Repeat("x", 600)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", kafka.OutboxStatusFailed, strings.Repeat("x", 500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "evt-1", reason))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxRepository_MarkProcessed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewInboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO processed_events")).
		WithArgs("punch-retry", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO processed_events")).
		WithArgs("punch-retry", "evt-1").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM processed_events")).
		WithArgs("punch-retry", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkProcessed(context.Background(), "punch-retry", "evt-1"))
	assert.ErrorIs(t, repo.MarkProcessed(context.Background(), "punch-retry", "evt-1"), kafka.ErrAlreadyProcessed)
	require.NoError(t, repo.Release(context.Background(), "punch-retry", "evt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
