package engine

import (
	"context"

	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// RedisCheck pings Redis.
func RedisCheck(client redis.Client) healthcheck.Checker {
	return func(ctx context.Context) healthcheck.Result {
		if err := client.Ping(ctx); err != nil {
			return healthcheck.Down(err, nil)
		}
		return healthcheck.Up(nil)
	}
}

// PostgresCheck pings the pool and reports its usage.
func PostgresCheck(db postgresql.PostgreSQLClient) healthcheck.Checker {
	return func(ctx context.Context) healthcheck.Result {
		health := postgresql.CheckHealth(ctx, db)
		if health.Status != "healthy" {
			return healthcheck.Down(errors.NewTracer(health.Error), health)
		}
		return healthcheck.Up(health)
	}
}

// GatewayCheck is down while the ingestor holds no socket.
func GatewayCheck(ingestor Ingestor) healthcheck.Checker {
	return func(ctx context.Context) healthcheck.Result {
		stats := ingestor.Stats()
		if !stats.Connected {
			return healthcheck.Down(errors.NewErrorDetails("gateway socket not connected", string(errors.GatewayNotConnected), "gateway"), stats)
		}
		return healthcheck.Up(stats)
	}
}
