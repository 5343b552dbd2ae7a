package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewTestClient starts an in-process miniredis server and returns a Client bound to it.
// The server is closed when the test ends; use the returned server to fast-forward TTLs.
func NewTestClient(t *testing.T) (*miniredis.Miniredis, Client) {
	t.Helper()

	server := miniredis.RunT(t)
	universal := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = universal.Close()
	})

	cfg := DefaultConfig()
	cfg.Addrs = []string{server.Addr()}
	cfg.PrefixKey = "test:"

	return server, NewClientWithUniversal(logger.NewNopLogger(), cfg, universal)
}
