package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-timeconsole/internal/config"
	"go-timeconsole/internal/messaging/kafka"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MemoryStoreURL selects the in-process record store instead of the REST API.
const MemoryStoreURL = "memory"

const connectRetries = 5

// platform holds the shared clients every binary builds its modules on.
type platform struct {
	store  recordstore.Store
	pager  recordstore.Pager
	cache  cache.Provider
	outbox kafka.OutboxRepository
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func (i *platform) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func newPlatform(cfg config.Config, logger *zap.Logger) (*platform, error) {
	inf := &platform{
		pager: recordstore.Pager{PageSize: cfg.RecordStore.PageSize, MaxRecords: cfg.RecordStore.MaxRecords, Logger: logger},
	}

	if cfg.RecordStore.BaseURL == MemoryStoreURL {
		logger.Warn("using in-memory record store")
		inf.store = recordstore.NewMemory()
	} else {
		if err := cfg.RequireRecordStore(); err != nil {
			return nil, err
		}
		inf.store = recordstore.NewClient(recordstore.ClientConfig{
			BaseURL:  cfg.RecordStore.BaseURL,
			BaseID:   cfg.RecordStore.BaseID,
			APIToken: cfg.RecordStore.APIToken,
			Timeout:  cfg.RecordStore.Timeout,
		}, logger)
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			return nil, err
		}
		inf.rdb = rdb
		inf.cache = cache.NewRedisProvider(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, caching in process memory")
		inf.cache = cache.NewMemoryProvider()
	}

	if cfg.OutboxEnabled() {
		db, err := openOutboxDB(cfg)
		if err != nil {
			inf.Close()
			return nil, err
		}
		inf.sqlDB = db
		inf.outbox = kafka.NewOutboxRepository(db)
	} else {
		logger.Warn("DB_HOST not set, alteration events are not published")
	}

	return inf, nil
}

func openOutboxDB(cfg config.Config) (*sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.Postgres.Host,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Name:     cfg.Postgres.Name,
		Port:     cfg.Postgres.Port,
		SSLMode:  cfg.Postgres.SSLMode,
	}, connectRetries)
	if err != nil {
		return nil, err
	}
	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kafka.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// BuildApp connects the infrastructure and mounts every module on router.
// The returned close func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	inf, err := newPlatform(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, cfg, inf, logger); err != nil {
		inf.Close()
		return nil, err
	}
	return inf.Close, nil
}
