package credential

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
	"github.com/stretchr/testify/assert"
)

func TestProvider_RealtimeCredential(t *testing.T) {
	testCases := []struct {
		name     string
		cached   string
		fallback string
		down     bool
		expected string
		ok       bool
	}{
		{name: "cached key wins", cached: "approval-1", fallback: "static", expected: "approval-1", ok: true},
		{name: "fallback when cache empty", fallback: "static", expected: "static", ok: true},
		{name: "fallback when cache down", cached: "approval-1", fallback: "static", down: true, expected: "static", ok: true},
		{name: "nothing configured", expected: "", ok: false},
		{name: "blank values ignored", cached: "  ", fallback: " ", expected: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, client := redis.NewTestClient(t)
			if tc.cached != "" {
				server.Set("test:gateway:approval_key", tc.cached)
			}
			if tc.down {
				server.Close()
			}

			provider := NewProvider(client, "gateway:approval_key", tc.fallback, logger.NewNopLogger())
			key, ok := provider.RealtimeCredential(context.Background())
			assert.Equal(t, tc.expected, key)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
