package ticker

import (
	"context"
	"encoding/json"
	"time"

	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// Default settings.
const (
	DefaultTTL          = 5 * time.Second
	DefaultTickChannel  = "ticks"
	DefaultDepthChannel = "depth"
)

// Config names the channels and the cache lifetime.
type Config struct {
	TTL          time.Duration
	TickChannel  string
	DepthChannel string
}

// Ticker caches the latest trade per instrument and fans ticks and depth
// updates out over Redis pub/sub.
type Ticker struct {
	client redis.Client
	config Config
	logger logger.Interface
}

var (
	_ marketdatav1.TickCache = (*Ticker)(nil)
	_ marketdatav1.Publisher = (*Ticker)(nil)
)

// NewTicker creates a Ticker. Zero config values take the defaults.
func NewTicker(client redis.Client, config Config, log logger.Interface) *Ticker {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.TickChannel == "" {
		config.TickChannel = DefaultTickChannel
	}
	if config.DepthChannel == "" {
		config.DepthChannel = DefaultDepthChannel
	}
	return &Ticker{client: client, config: config, logger: log}
}

func (t *Ticker) key(instrument string) string {
	return t.client.Key("tick", instrument)
}

// SaveTick stores tick as the latest trade of its instrument.
func (t *Ticker) SaveTick(ctx context.Context, tick *marketdatav1.Tick) error {
	payload, err := json.Marshal(tick)
	if err != nil {
		return errors.NewTracer("encode_tick").Wrap(err)
	}
	return t.client.Set(ctx, t.key(tick.Instrument), payload, t.config.TTL)
}

// LatestTick returns ok=false once the cached tick expired.
func (t *Ticker) LatestTick(ctx context.Context, instrument string) (*marketdatav1.Tick, bool, error) {
	raw, err := t.client.Get(ctx, t.key(instrument))
	if err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}

	var tick marketdatav1.Tick
	if err := json.Unmarshal([]byte(raw), &tick); err != nil {
		return nil, false, errors.NewTracer("decode_tick").Wrap(err)
	}
	return &tick, true, nil
}

// PublishTick fans tick out on the tick channel.
func (t *Ticker) PublishTick(ctx context.Context, tick *marketdatav1.Tick) error {
	return t.publish(ctx, t.config.TickChannel, tick)
}

// PublishDepth fans depth out on the depth channel.
func (t *Ticker) PublishDepth(ctx context.Context, depth *marketdatav1.Depth) error {
	return t.publish(ctx, t.config.DepthChannel, depth)
}

func (t *Ticker) publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.NewTracer("encode_event").Wrap(err)
	}

	receivers, err := t.client.Publish(ctx, channel, payload)
	if err != nil {
		return err
	}
	t.logger.DebugContext(ctx, "published market data",
		logger.Field{Key: "channel", Value: channel},
		logger.Field{Key: "receivers", Value: receivers},
	)
	return nil
}
