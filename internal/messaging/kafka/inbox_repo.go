package kafka

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAlreadyProcessed means the consumer has handled this event before.
var ErrAlreadyProcessed = errors.New("event already processed")

const uniqueViolation = "23505"

// InboxRepository records handled event ids so redelivered messages are
// skipped. Release forgets an id whose handling failed.
type InboxRepository interface {
	MarkProcessed(ctx context.Context, consumer, eventID string) error
	Release(ctx context.Context, consumer, eventID string) error
}

type inboxRepository struct {
	db *sql.DB
}

func NewInboxRepository(db *sql.DB) InboxRepository {
	return &inboxRepository{db: db}
}

func (r *inboxRepository) MarkProcessed(ctx context.Context, consumer, eventID string) error {
	query := `
INSERT INTO processed_events (consumer, event_id, processed_at)
VALUES ($1, $2, NOW())
`
	_, err := r.db.ExecContext(ctx, query, consumer, eventID)
	if err != nil && IsUniqueViolation(err) {
		return ErrAlreadyProcessed
	}
	return err
}

func (r *inboxRepository) Release(ctx context.Context, consumer, eventID string) error {
	query := `DELETE FROM processed_events WHERE consumer = $1 AND event_id = $2`
	_, err := r.db.ExecContext(ctx, query, consumer, eventID)
	return err
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value")
}
