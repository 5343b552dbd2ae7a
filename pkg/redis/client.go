package redis

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger  logger.Interface
	config  *Config
	cmdable redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
// Connect must be called before use.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

// NewClientWithUniversal wraps an already constructed go-redis client.
func NewClientWithUniversal(logger logger.Interface, config *Config, universal redis.UniversalClient) Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &client{
		logger:  logger,
		config:  config,
		cmdable: universal,
	}
}

func (c *client) validate() error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	}

	if len(c.config.Addrs) == 0 {
		return errors.NewErrorDetails("Redis addresses are empty", string(errors.RedisConfigError), "addrs")
	}

	if c.config.Mode != Standalone && c.config.Mode != Cluster {
		return errors.NewErrorDetails("Invalid Redis mode", string(errors.RedisConfigError), "mode")
	}

	if c.config.ConnectTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis connect timeout", string(errors.RedisConfigError), "connect_timeout")
	}

	if c.config.PoolSize <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool size", string(errors.RedisConfigError), "pool_size")
	}

	if c.config.MaxIdleConns < 0 {
		return errors.NewErrorDetails("Invalid Redis max idle connections", string(errors.RedisConfigError), "max_idle_conns")
	}

	if c.config.PoolTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool timeout", string(errors.RedisConfigError), "pool_timeout")
	}

	if c.config.MaxRetries < 0 || c.config.MinRetryBackoff < 0 || c.config.MaxRetryBackoff < 0 {
		return errors.NewErrorDetails("Invalid Redis retry settings", string(errors.RedisConfigError), "retries")
	}

	return nil
}

func (c *client) Connect(ctx context.Context) error {
	if err := c.validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		c.cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewTracer("redis_connect_error").Wrap(err)
	}
	return nil
}

// Reconnect retries Connect with jittered exponential backoff, at most
// ReconnectMaxRetries times, until it succeeds or ctx is done.
func (c *client) Reconnect(ctx context.Context) bool {
	if c.config.ReconnectMaxRetries <= 0 {
		return false
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.MinRetryBackoff
	policy.MaxInterval = c.config.MaxRetryBackoff
	policy.Multiplier = 2
	policy.MaxElapsedTime = 0

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return c.Connect(connectCtx)
	},
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.config.ReconnectMaxRetries-1)), ctx),
		func(err error, delay time.Duration) {
			c.logger.Error(errors.TracerFromError(err),
				logger.Field{Key: "attempt", Value: attempt},
				logger.Field{Key: "delay", Value: delay},
			)
		},
	)
	if err != nil {
		c.logger.Info("Reconnect to Redis gave up", logger.Field{Key: "attempts", Value: attempt})
		return false
	}

	c.logger.Info("Reconnected to Redis successfully", logger.Field{Key: "attempt", Value: attempt})
	return true
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", string(errors.RedisDisconnectionError), "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.cmdable == nil {
		return errors.NewErrorDetails("Redis client is not connected", string(errors.RedisConnectionError), "ping")
	}
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

func (c *client) Key(parts ...string) string {
	return c.config.PrefixKey + strings.Join(parts, ":")
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), key)
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), key)
	}
	return nil
}

func (c *client) Incr(ctx context.Context, key string) (int64, error) {
	val, err := c.cmdable.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to increment counter in Redis", string(errors.RedisIncrError), key)
	}
	return val, nil
}

// PTTL returns the remaining time to live. Negative durations follow Redis:
// -1 for keys without expiry, -2 for missing keys.
func (c *client) PTTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.cmdable.PTTL(ctx, key).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to read key ttl from Redis", string(errors.RedisTTLError), key)
	}
	return ttl, nil
}

func (c *client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	values, err := c.cmdable.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to read hash from Redis", string(errors.RedisHashError), key)
	}
	return values, nil
}

func (c *client) ZAdd(ctx context.Context, key string, members ...redis.Z) (int64, error) {
	added, err := c.cmdable.ZAdd(ctx, key, members...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to add members to sorted set in Redis", string(errors.RedisSortedSetError), key)
	}
	return added, nil
}

func (c *client) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	members, err := c.cmdable.ZRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to read sorted set from Redis", string(errors.RedisSortedSetError), key)
	}
	return members, nil
}

func (c *client) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]redis.Z, error) {
	members, err := c.cmdable.ZRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to read sorted set from Redis", string(errors.RedisSortedSetError), key)
	}
	return members, nil
}

func (c *client) SAdd(ctx context.Context, key string, members ...any) (int64, error) {
	added, err := c.cmdable.SAdd(ctx, key, members...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to add members to set in Redis", string(errors.RedisSortedSetError), key)
	}
	return added, nil
}

func (c *client) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := c.cmdable.SMembers(ctx, key).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to read set from Redis", string(errors.RedisSortedSetError), key)
	}
	return members, nil
}

func (c *client) TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) error {
	if _, err := c.cmdable.TxPipelined(ctx, fn); err != nil {
		return errors.NewTracer(string(errors.RedisTxError)).Wrap(err)
	}
	return nil
}

func (c *client) RunScript(ctx context.Context, script *redis.Script, keys []string, args ...any) (any, error) {
	result, err := script.Run(ctx, c.cmdable, keys, args...).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewTracer(string(errors.RedisScriptError)).Wrap(err)
	}
	return result, nil
}

// Publish returns the number of receivers. Zero receivers is not an error.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	published, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish message in Redis", string(errors.RedisPublishError), channel)
	}
	return published, nil
}
