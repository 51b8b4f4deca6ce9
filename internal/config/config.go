package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven configuration for every binary.
type Config struct {
	HTTP struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	JWTSecret string

	RecordStore struct {
		BaseURL    string
		BaseID     string
		APIToken   string
		Timeout    time.Duration
		PageSize   int
		MaxRecords int
	}
	Tables Tables

	RedisAddr string
	CacheTTL  struct {
		Permissions  time.Duration
		Names        time.Duration
		PeriodTotals time.Duration
		Departments  time.Duration
	}
	DecisionLockTTL time.Duration

	Postgres struct {
		Host     string
		User     string
		Password string
		Name     string
		Port     string
		SSLMode  string
	}
	KafkaBroker  string
	OutboxPoll   time.Duration
	ConsumerName string

	BulkConcurrency      int
	AggregateConcurrency int
	WindowLimit          int
	BusinessTimezone     string

	RateLimit struct {
		PerSecond float64
		Burst     int
	}
}

// Tables maps each entity to its record store table id.
type Tables struct {
	Punches         string
	Alterations     string
	TimeCards       string
	PayPeriods      string
	Templates       string
	Employees       string
	Departments     string
	Timezones       string
	UserAppAccess   string
	UserPermissions string

	// EmployeeNameField is the id of the structured name column on the
	// employees table, tried before the generic name columns.
	EmployeeNameField string
}

// OutboxEnabled reports whether a Postgres outbox is configured.
func (c Config) OutboxEnabled() bool {
	return c.Postgres.Host != ""
}

// Load reads configuration from the environment. Callers load .env files first.
func Load() (Config, error) {
	var cfg Config
	var errs []error

	cfg.HTTP.Port = getString("PORT", "3000")
	cfg.HTTP.ReadTimeout = getDuration("HTTP_READ_TIMEOUT", 5*time.Second, &errs)
	cfg.HTTP.WriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second, &errs)
	cfg.HTTP.IdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second, &errs)
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	cfg.RecordStore.BaseURL = strings.TrimRight(getString("RECORD_STORE_BASE_URL", "https://tables.fillout.com/api/v1/bases"), "/")
	cfg.RecordStore.BaseID = os.Getenv("RECORD_STORE_BASE_ID")
	cfg.RecordStore.APIToken = getString("RECORD_STORE_API_TOKEN", os.Getenv("RECORD_STORE_API_KEY"))
	cfg.RecordStore.Timeout = getDuration("RECORD_STORE_TIMEOUT", 30*time.Second, &errs)
	cfg.RecordStore.PageSize = getInt("RECORD_STORE_PAGE_SIZE", 2000, &errs)
	cfg.RecordStore.MaxRecords = getInt("RECORD_STORE_MAX_RECORDS", 10000, &errs)

	cfg.Tables = Tables{
		Punches:         os.Getenv("TABLE_PUNCHES"),
		Alterations:     os.Getenv("TABLE_PUNCH_ALTERATIONS"),
		TimeCards:       os.Getenv("TABLE_TIME_CARDS"),
		PayPeriods:      os.Getenv("TABLE_PAY_PERIODS"),
		Templates:       os.Getenv("TABLE_PAY_PERIOD_TEMPLATES"),
		Employees:       os.Getenv("TABLE_EMPLOYEES"),
		Departments:     os.Getenv("TABLE_DEPARTMENTS"),
		Timezones:       os.Getenv("TABLE_TIMEZONES"),
		UserAppAccess:   os.Getenv("TABLE_USER_APP_ACCESS"),
		UserPermissions: os.Getenv("TABLE_USER_PERMISSIONS"),

		EmployeeNameField: os.Getenv("EMPLOYEES_NAME_FIELD_ID"),
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.CacheTTL.Permissions = getDuration("CACHE_TTL_PERMISSIONS", 5*time.Minute, &errs)
	cfg.CacheTTL.Names = getDuration("CACHE_TTL_EMPLOYEE_NAMES", 30*time.Minute, &errs)
	cfg.CacheTTL.PeriodTotals = getDuration("CACHE_TTL_PERIOD_TOTALS", 2*time.Minute, &errs)
	cfg.CacheTTL.Departments = getDuration("CACHE_TTL_DEPARTMENTS", 30*time.Minute, &errs)
	cfg.DecisionLockTTL = getDuration("DECISION_LOCK_TTL", 30*time.Second, &errs)

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.Name = os.Getenv("DB_NAME")
	cfg.Postgres.Port = getString("DB_PORT", "5432")
	cfg.Postgres.SSLMode = getString("DB_SSLMODE", "disable")
	cfg.KafkaBroker = os.Getenv("KAFKA_BROKER")
	cfg.OutboxPoll = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second, &errs)
	cfg.ConsumerName = getString("KAFKA_CONSUMER_GROUP", "go-timeconsole-punch-retry")

	cfg.BulkConcurrency = getInt("BULK_APPROVE_CONCURRENCY", 1, &errs)
	cfg.AggregateConcurrency = getInt("AGGREGATE_CONCURRENCY", 4, &errs)
	cfg.WindowLimit = getInt("PAY_PERIOD_WINDOW_LIMIT", 5, &errs)
	cfg.BusinessTimezone = getString("BUSINESS_TIMEZONE", "UTC")

	cfg.RateLimit.PerSecond = getFloat("RATE_LIMIT_PER_SECOND", 10, &errs)
	cfg.RateLimit.Burst = getInt("RATE_LIMIT_BURST", 20, &errs)

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.RecordStore.PageSize <= 0 || c.RecordStore.PageSize > 2000 {
		return fmt.Errorf("RECORD_STORE_PAGE_SIZE must be within 1..2000, got %d", c.RecordStore.PageSize)
	}
	if c.BulkConcurrency < 1 {
		return fmt.Errorf("BULK_APPROVE_CONCURRENCY must be positive, got %d", c.BulkConcurrency)
	}
	if c.AggregateConcurrency < 1 {
		return fmt.Errorf("AGGREGATE_CONCURRENCY must be positive, got %d", c.AggregateConcurrency)
	}
	if _, err := time.LoadLocation(c.BusinessTimezone); err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
	}
	return nil
}

// RequireRecordStore is checked by binaries that talk to the record store.
func (c Config) RequireRecordStore() error {
	var missing []string
	if c.RecordStore.BaseID == "" {
		missing = append(missing, "RECORD_STORE_BASE_ID")
	}
	if c.RecordStore.APIToken == "" {
		missing = append(missing, "RECORD_STORE_API_TOKEN")
	}
	if c.Tables.Punches == "" {
		missing = append(missing, "TABLE_PUNCHES")
	}
	if c.Tables.Alterations == "" {
		missing = append(missing, "TABLE_PUNCH_ALTERATIONS")
	}
	if c.Tables.PayPeriods == "" {
		missing = append(missing, "TABLE_PAY_PERIODS")
	}
	if c.Tables.TimeCards == "" {
		missing = append(missing, "TABLE_TIME_CARDS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer", key))
		return def
	}
	return n
}

func getFloat(key string, def float64, errs *[]error) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a number", key))
		return def
	}
	return f
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration like 30s", key))
		return def
	}
	return d
}
