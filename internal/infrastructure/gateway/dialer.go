// Package gateway opens exchange gateway websockets and drives one read loop
// per connection.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
)

// Default settings.
const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 5 * time.Second
	DefaultChunkSize        = 4096
)

// Config is the websocket endpoint configuration.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// ReadLimit caps one message in bytes; zero means no limit.
	ReadLimit int64
	// ChunkSize is the largest fragment handed to the listener.
	ChunkSize int
}

// Dialer implements marketdatav1.Dialer over gorilla/websocket.
type Dialer struct {
	config Config
	dialer *websocket.Dialer
	logger logger.Interface
}

var _ marketdatav1.Dialer = (*Dialer)(nil)

// NewDialer creates a Dialer.
func NewDialer(config Config, log logger.Interface) *Dialer {
	if config.HandshakeTimeout <= 0 {
		config.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultWriteTimeout
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}

	return &Dialer{
		config: config,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: config.HandshakeTimeout,
		},
		logger: log,
	}
}

// Dial opens a socket and starts its read loop. listener receives OnOpen
// first, then messages in arrival order, then exactly one OnError or OnClose
// unless the socket is closed locally.
func (d *Dialer) Dial(ctx context.Context, listener marketdatav1.Listener) (marketdatav1.Conn, error) {
	ws, resp, err := d.dialer.DialContext(ctx, d.config.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.NewTracer("failed to dial gateway").Wrap(err)
	}
	if d.config.ReadLimit > 0 {
		ws.SetReadLimit(d.config.ReadLimit)
	}

	conn := newConn(ws, d.config, d.logger)
	go conn.readLoop(listener)

	d.logger.DebugContext(ctx, "gateway socket dialed", logger.Field{Key: "url", Value: d.config.URL})
	return conn, nil
}
