package ingestor

import (
	"context"

	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
)

// OnOpen is called once the socket handshake completed.
func (i *Ingestor) OnOpen() {
	i.logger.Debug("gateway socket open")
}

// OnMessage buffers fragments and handles the message once final arrives.
// Malformed input is logged and dropped; a panic never leaves the handler.
func (i *Ingestor) OnMessage(data []byte, final bool) {
	i.mu.Lock()
	i.fragments = append(i.fragments, data...)
	if !final {
		i.mu.Unlock()
		return
	}
	message := i.fragments
	i.fragments = nil
	i.stats.LastMessageAt = i.now()
	ctx := i.runCtx
	i.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			i.logger.ErrorContext(ctx, errors.NewTracerf("panic handling gateway message: %v", r))
			i.countDropped()
		}
	}()

	if marketdatav1.IsDataFrame(message) {
		i.handleFrame(ctx, string(message))
		return
	}
	i.handleControl(ctx, message)
}

// OnError clears the connection and schedules a reconnect.
func (i *Ingestor) OnError(err error) {
	i.logger.Warn("gateway socket error", logger.Field{Key: "error", Value: err.Error()})
	i.dropped()
}

// OnClose clears the connection and schedules a reconnect.
func (i *Ingestor) OnClose(code int, reason string) {
	i.logger.Info("gateway socket closed",
		logger.Field{Key: "code", Value: code},
		logger.Field{Key: "reason", Value: reason},
	)
	i.dropped()
}

func (i *Ingestor) handleControl(ctx context.Context, raw []byte) {
	msg, err := marketdatav1.ParseControl(raw)
	if err != nil {
		i.logger.WarnContext(ctx, "dropping gateway message", logger.Field{Key: "error", Value: err.Error()})
		i.countDropped()
		return
	}

	switch {
	case msg.IsPingPong():
		i.mu.Lock()
		conn := i.conn
		i.mu.Unlock()
		if conn == nil {
			return
		}
		if err := conn.WriteMessage(ctx, raw); err != nil {
			i.logger.WarnContext(ctx, "pingpong echo failed", logger.Field{Key: "error", Value: err.Error()})
		}
	case msg.IsAck():
		i.mu.Lock()
		i.stats.AcknowledgedSubs++
		i.mu.Unlock()
	default:
		i.logger.InfoContext(ctx, "gateway control message",
			logger.Field{Key: "tr_id", Value: msg.Header.TrID},
			logger.Field{Key: "tr_key", Value: msg.Header.TrKey},
			logger.Field{Key: "rt_cd", Value: msg.Body.ReturnCode},
			logger.Field{Key: "msg", Value: msg.Body.Message},
		)
	}
}

func (i *Ingestor) handleFrame(ctx context.Context, raw string) {
	frame, err := marketdatav1.ParseFrame(raw)
	if err != nil {
		i.logger.WarnContext(ctx, "dropping gateway frame", logger.Field{Key: "error", Value: err.Error()})
		i.countDropped()
		return
	}

	receivedAt := i.now()
	for _, record := range frame.Records {
		switch frame.TrID {
		case marketdatav1.TrIDTick:
			tick, err := marketdatav1.DecodeTick(record, receivedAt)
			if err != nil {
				i.logger.WarnContext(ctx, "dropping tick record", logger.Field{Key: "error", Value: err.Error()})
				i.countDropped()
				continue
			}
			i.handleTick(ctx, tick)
		case marketdatav1.TrIDDepth:
			depth, err := marketdatav1.DecodeDepth(record, receivedAt)
			if err != nil {
				i.logger.WarnContext(ctx, "dropping depth record", logger.Field{Key: "error", Value: err.Error()})
				i.countDropped()
				continue
			}
			i.handleDepth(ctx, depth)
		default:
			i.logger.DebugContext(ctx, "unknown gateway stream", logger.Field{Key: "tr_id", Value: frame.TrID})
			i.countDropped()
			return
		}
	}
}

func (i *Ingestor) handleTick(ctx context.Context, tick *marketdatav1.Tick) {
	i.mu.Lock()
	i.stats.TicksReceived++
	i.mu.Unlock()

	if err := i.ticks.SaveTick(ctx, tick); err != nil {
		i.logger.ErrorContext(ctx, err, logger.Field{Key: "instrument", Value: tick.Instrument})
	}
	if err := i.publisher.PublishTick(ctx, tick); err != nil {
		i.logger.ErrorContext(ctx, err, logger.Field{Key: "instrument", Value: tick.Instrument})
	}
}

// handleDepth writes a snapshot unless depth collection closed for the day
// or the instrument was written within the throttle interval.
func (i *Ingestor) handleDepth(ctx context.Context, depth *marketdatav1.Depth) {
	if !i.policy.Allows(depth.ReceivedAt) {
		return
	}
	if !i.throttle.allow(depth.Instrument, depth.ReceivedAt) {
		i.mu.Lock()
		i.stats.DepthsThrottled++
		i.mu.Unlock()
		return
	}

	version, err := i.book.WriteSnapshot(ctx, depth.Instrument, depth.Asks, depth.Bids)
	if err != nil {
		i.logger.ErrorContext(ctx, err, logger.Field{Key: "instrument", Value: depth.Instrument})
		return
	}

	i.mu.Lock()
	i.stats.DepthsWritten++
	i.mu.Unlock()
	i.logger.DebugContext(ctx, "snapshot written",
		logger.Field{Key: "instrument", Value: depth.Instrument},
		logger.Field{Key: "version", Value: version},
	)

	if err := i.publisher.PublishDepth(ctx, depth); err != nil {
		i.logger.ErrorContext(ctx, err, logger.Field{Key: "instrument", Value: depth.Instrument})
	}
}

func (i *Ingestor) countDropped() {
	i.mu.Lock()
	i.stats.DroppedFrames++
	i.mu.Unlock()
}
