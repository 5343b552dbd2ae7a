package gateway

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
)

// Conn is one live gateway socket. Writes are serialized; Close is idempotent.
type Conn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
	chunkSize    int
	logger       logger.Interface

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
	done      chan struct{}
}

var _ marketdatav1.Conn = (*Conn)(nil)

func newConn(ws *websocket.Conn, config Config, log logger.Interface) *Conn {
	return &Conn{
		ws:           ws,
		writeTimeout: config.WriteTimeout,
		chunkSize:    config.ChunkSize,
		logger:       log,
		done:         make(chan struct{}),
	}
}

// WriteMessage sends one text message.
func (c *Conn) WriteMessage(ctx context.Context, data []byte) error {
	if c.closed.Load() {
		return errors.NewErrorDetails("gateway socket is closed", string(errors.GatewayNotConnected), "conn")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return errors.TracerFromError(err)
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.NewTracer("failed to write gateway message").Wrap(err)
	}
	return nil
}

// Close sends a normal close frame and releases the socket. The socket is
// released even when the close frame cannot be sent; that error is returned.
func (c *Conn) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		c.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := c.ws.WriteControl(websocket.CloseMessage, msg, c.deadline(ctx)); err != nil {
			c.closeErr = errors.NewTracer("failed to send close frame").Wrap(err)
		}
		c.writeMu.Unlock()

		if err := c.ws.Close(); err != nil && c.closeErr == nil {
			c.closeErr = errors.TracerFromError(err)
		}
	})
	return c.closeErr
}

// Done is closed once the read loop exited.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

// readLoop is the only reader of ws.
func (c *Conn) readLoop(listener marketdatav1.Listener) {
	defer close(c.done)

	listener.OnOpen()
	buf := make([]byte, c.chunkSize)
	for {
		_, reader, err := c.ws.NextReader()
		if err != nil {
			c.finish(listener, err)
			return
		}
		if err := c.deliver(listener, reader, buf); err != nil {
			c.finish(listener, err)
			return
		}
	}
}

// deliver hands one message to the listener in chunks; the last carries final.
func (c *Conn) deliver(listener marketdatav1.Listener, reader io.Reader, buf []byte) error {
	var pending []byte
	for {
		n, err := io.ReadFull(reader, buf)
		if n > 0 {
			if pending != nil {
				listener.OnMessage(pending, false)
			}
			pending = append([]byte(nil), buf[:n]...)
		}
		switch {
		case err == nil:
			continue
		case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
			listener.OnMessage(pending, true)
			return nil
		default:
			return err
		}
	}
}

func (c *Conn) finish(listener marketdatav1.Listener, err error) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	_ = c.ws.Close()

	var closeErr *websocket.CloseError
	if stderrors.As(err, &closeErr) {
		listener.OnClose(closeErr.Code, closeErr.Text)
		return
	}
	listener.OnError(err)
}
