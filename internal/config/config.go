// Package config holds the matching core configuration.
package config

import (
	"time"
	_ "time/tzdata" // INGEST_TIMEZONE must resolve on hosts without zoneinfo

	pkgconfig "github.com/muhammadchandra19/paper-exchange/pkg/config"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// Book backends.
const (
	BookBackendRedis  = "redis"
	BookBackendMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig         `envPrefix:"APP_"`
	Gateway  GatewayConfig     `envPrefix:"GATEWAY_"`
	Ingest   IngestConfig      `envPrefix:"INGEST_"`
	Matching MatchingConfig    `envPrefix:"MATCHING_"`
	Redis    redis.Config      `envPrefix:"REDIS_"`
	Postgres postgresql.Config `envPrefix:"POSTGRES_"`
	Kafka    KafkaConfig       `envPrefix:"KAFKA_"`
}

// AppConfig represents the process level configuration.
type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"paper-exchange-matching"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HealthAddr      string        `env:"HEALTH_ADDR" envDefault:":8081"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// GatewayConfig is the exchange websocket gateway.
type GatewayConfig struct {
	URL              string        `env:"URL" envDefault:"ws://ops.koreainvestment.com:21000"`
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT" envDefault:"10s"`
	// Approval key used when the credential cache is empty.
	ApprovalKey string `env:"APPROVAL_KEY"`
	// Redis key (without prefix) holding the short-lived approval key.
	CredentialKey string `env:"CREDENTIAL_KEY" envDefault:"gateway:approval_key"`
}

// IngestConfig drives the market data ingestor.
type IngestConfig struct {
	Instruments   []string      `env:"INSTRUMENTS" envSeparator:","`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"20"`
	BatchDelay    time.Duration `env:"BATCH_DELAY" envDefault:"1s"`
	DepthCutoff   string        `env:"DEPTH_CUTOFF" envDefault:"15:20"`
	Timezone      string        `env:"TIMEZONE" envDefault:"Asia/Seoul"`
	ReconnectBase time.Duration `env:"RECONNECT_BASE" envDefault:"1s"`
	ReconnectMax  time.Duration `env:"RECONNECT_MAX" envDefault:"60s"`
	SnapshotTTL   time.Duration `env:"SNAPSHOT_TTL" envDefault:"10s"`
	WriteThrottle time.Duration `env:"WRITE_THROTTLE" envDefault:"1s"`
	TickTTL       time.Duration `env:"TICK_TTL" envDefault:"5s"`
	TickChannel   string        `env:"TICK_CHANNEL" envDefault:"ticks"`
	DepthChannel  string        `env:"DEPTH_CHANNEL" envDefault:"depth"`
}

// MatchingConfig drives the scheduler and executor.
type MatchingConfig struct {
	Interval    time.Duration `env:"INTERVAL" envDefault:"1s"`
	BookBackend string        `env:"BOOK_BACKEND" envDefault:"redis"`
	// Page size when scanning the resting orders of one instrument and side.
	ScanLimit int `env:"SCAN_LIMIT" envDefault:"500"`
}

// KafkaConfig represents the execution notification producer.
type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"order-executions"`
	// Bounds handing one event to the async writer.
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"2s"`
}

// Load loads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, errors.NewTracer("failed to parse config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	errs := errors.NewBaseError()

	if c.Ingest.BatchSize <= 0 {
		errs.AddErrorDetails(errors.NewErrorDetails("batch size must be positive", string(errors.ConfigInvalidError), "INGEST_BATCH_SIZE"))
	}
	if _, err := time.Parse("15:04", c.Ingest.DepthCutoff); err != nil {
		errs.AddErrorDetails(errors.NewErrorDetails("depth cutoff must be HH:MM", string(errors.ConfigInvalidError), "INGEST_DEPTH_CUTOFF"))
	}
	if _, err := time.LoadLocation(c.Ingest.Timezone); err != nil {
		errs.AddErrorDetails(errors.NewErrorDetails("unknown timezone", string(errors.ConfigInvalidError), "INGEST_TIMEZONE"))
	}
	if c.Ingest.SnapshotTTL <= 0 {
		errs.AddErrorDetails(errors.NewErrorDetails("snapshot ttl must be positive", string(errors.ConfigInvalidError), "INGEST_SNAPSHOT_TTL"))
	}
	if c.Matching.Interval <= 0 {
		errs.AddErrorDetails(errors.NewErrorDetails("matching interval must be positive", string(errors.ConfigInvalidError), "MATCHING_INTERVAL"))
	}
	if c.Matching.BookBackend != BookBackendRedis && c.Matching.BookBackend != BookBackendMemory {
		errs.AddErrorDetails(errors.NewErrorDetails("book backend must be redis or memory", string(errors.ConfigInvalidError), "MATCHING_BOOK_BACKEND"))
	}

	if errs.HasDetails() {
		return errs
	}
	return nil
}
