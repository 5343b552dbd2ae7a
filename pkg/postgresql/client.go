package postgresql

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the PostgreSQL client configuration.
type Config struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	Database string `env:"DATABASE" envDefault:"paper_exchange"`
	Username string `env:"USERNAME" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:""`

	SSLMode     string `env:"SSL_MODE" envDefault:"prefer"`
	SSLCert     string `env:"SSL_CERT"`
	SSLKey      string `env:"SSL_KEY"`
	SSLRootCert string `env:"SSL_ROOT_CERT"`

	// Each matching pass holds one connection for its transaction.
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"20"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"2h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"15m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`

	StatementCacheCapacity int    `env:"STATEMENT_CACHE_CAPACITY" envDefault:"512"`
	ApplicationName        string `env:"APPLICATION_NAME" envDefault:"paper-exchange-matching"`
	SearchPath             string `env:"SEARCH_PATH" envDefault:"public"`
}

// Client routes statements to the transaction in ctx, or to the pool.
type Client struct {
	pool     *pgxpool.Pool
	database string
}

var _ PostgreSQLClient = (*Client)(nil)

// NewClient opens the pool and pings it once.
func NewClient(ctx context.Context, config Config) (PostgreSQLClient, error) {
	poolConfig, err := newPoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgresql pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgresql: %w", err)
	}

	return &Client{pool: pool, database: config.Database}, nil
}

func newPoolConfig(config Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn(config))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgresql config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConnLifetime = config.MaxConnLifetime
	poolConfig.MaxConnIdleTime = config.MaxConnIdleTime

	conn := poolConfig.ConnConfig
	conn.ConnectTimeout = config.ConnectTimeout
	conn.DefaultQueryExecMode = pgx.QueryExecModeExec
	conn.StatementCacheCapacity = config.StatementCacheCapacity
	if config.ApplicationName != "" {
		conn.RuntimeParams["application_name"] = config.ApplicationName
	}
	if config.SearchPath != "" {
		conn.RuntimeParams["search_path"] = config.SearchPath
	}
	return poolConfig, nil
}

// dsn renders config as a postgres:// URL, escaping credentials.
func dsn(config Config) string {
	query := url.Values{}
	query.Set("sslmode", config.SSLMode)
	for key, value := range map[string]string{
		"sslcert":     config.SSLCert,
		"sslkey":      config.SSLKey,
		"sslrootcert": config.SSLRootCert,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.Username, config.Password),
		Host:     config.Host + ":" + strconv.Itoa(config.Port),
		Path:     "/" + config.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

func (c *Client) DatabaseName() string {
	return c.database
}

func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx, ok := GetTx(ctx); ok {
		return tx.Exec(ctx, sql, args...)
	}
	return c.pool.Exec(ctx, sql, args...)
}

func (c *Client) Query(ctx context.Context, sql string, args ...any) (RowsInterface, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if tx, ok := GetTx(ctx); ok {
		rows, err = tx.Query(ctx, sql, args...)
	} else {
		rows, err = c.pool.Query(ctx, sql, args...)
	}
	if err != nil {
		return nil, err
	}
	return NewRowsWrapper(rows), nil
}

func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx, ok := GetTx(ctx); ok {
		return tx.QueryRow(ctx, sql, args...)
	}
	return c.pool.QueryRow(ctx, sql, args...)
}

func (c *Client) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	if tx, ok := GetTx(ctx); ok {
		return tx.SendBatch(ctx, b)
	}
	return c.pool.SendBatch(ctx, b)
}

func (c *Client) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.pool.Begin(ctx)
}

func (c *Client) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return c.pool.BeginTx(ctx, txOptions)
}
