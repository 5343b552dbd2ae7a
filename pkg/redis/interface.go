package redis

import (
	"context"
	"time"

	v9 "github.com/redis/go-redis/v9"
)

// Client defines the interface for a Redis client.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	// Key joins parts with ':' behind the configured prefix.
	Key(parts ...string) string

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	PTTL(ctx context.Context, key string) (time.Duration, error)

	HGetAll(ctx context.Context, key string) (map[string]string, error)

	ZAdd(ctx context.Context, key string, members ...v9.Z) (int64, error)
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]v9.Z, error)

	SAdd(ctx context.Context, key string, members ...any) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)

	// TxPipelined queues commands in fn and executes them inside MULTI/EXEC.
	TxPipelined(ctx context.Context, fn func(v9.Pipeliner) error) error
	// RunScript evaluates a Lua script atomically, loading it on first use.
	RunScript(ctx context.Context, script *v9.Script, keys []string, args ...any) (any, error)

	// Publish returns the number of receivers.
	Publish(ctx context.Context, channel string, message any) (int64, error)
}
