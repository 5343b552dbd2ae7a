// Package credential resolves the realtime gateway approval key.
package credential

import (
	"context"
	"strings"

	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// Provider reads the approval key cached in Redis by the token issuer and
// falls back to a statically configured key.
type Provider struct {
	client   redis.Client
	key      string
	fallback string
	logger   logger.Interface
}

var _ marketdatav1.CredentialProvider = (*Provider)(nil)

// NewProvider creates a Provider. key is unprefixed; fallback may be empty.
func NewProvider(client redis.Client, key, fallback string, log logger.Interface) *Provider {
	return &Provider{
		client:   client,
		key:      client.Key(key),
		fallback: strings.TrimSpace(fallback),
		logger:   log,
	}
}

// RealtimeCredential returns the cached key, or the fallback when the cache
// is empty or unreachable.
func (p *Provider) RealtimeCredential(ctx context.Context) (string, bool) {
	value, err := p.client.Get(ctx, p.key)
	if err != nil {
		p.logger.WarnContext(ctx, "credential cache unavailable", logger.Field{Key: "error", Value: err.Error()})
	}
	if value = strings.TrimSpace(value); value != "" {
		return value, true
	}
	if p.fallback != "" {
		return p.fallback, true
	}
	return "", false
}
