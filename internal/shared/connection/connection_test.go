package connection_test

import (
	"testing"

	"go-timeconsole/internal/shared/connection"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := connection.PostgresConfig{
		Host:     "localhost",
		User:     "outbox",
		Password: "secret",
		Name:     "timeconsole",
		Port:     "5432",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=outbox password=secret dbname=timeconsole port=5432 sslmode=disable",
		cfg.DSN(),
	)
}
