//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"go-timeconsole/internal/messaging/kafka"
	"go-timeconsole/internal/shared/connection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestOutboxAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()

	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "timeconsole",
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "secret",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     host,
		User:     "test",
		Password: "secret",
		Name:     "timeconsole",
		Port:     port.Port(),
		SSLMode:  "disable",
	}, 3)
	require.NoError(t, err)
	db, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, kafka.EnsureSchema(ctx, db))
	require.NoError(t, kafka.EnsureSchema(ctx, db), "schema must be re-runnable")

	outbox := kafka.NewOutboxRepository(db)
	event, err := kafka.NewOutboxEvent("req-1", "punch_alteration", "alt_1", "alteration_decided", "timeconsole.alteration.decided.v1", map[string]string{"status": "approved"})
	require.NoError(t, err)
	require.NoError(t, outbox.Create(ctx, event))

	pending, err := outbox.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, event.ID, pending[0].ID)
	assert.JSONEq(t, `{"status":"approved"}`, string(pending[0].Payload))

	require.NoError(t, outbox.MarkFailed(ctx, event.ID, "broker unavailable"))
	pending, err = outbox.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "failed event waits for its retry time")

	inbox := kafka.NewInboxRepository(db)
	require.NoError(t, inbox.MarkProcessed(ctx, "punch-patch-retry", event.ID))
	assert.ErrorIs(t, inbox.MarkProcessed(ctx, "punch-patch-retry", event.ID), kafka.ErrAlreadyProcessed)
	require.NoError(t, inbox.Release(ctx, "punch-patch-retry", event.ID))
	require.NoError(t, inbox.MarkProcessed(ctx, "punch-patch-retry", event.ID))
}
