// Package ingestor keeps one live gateway socket, subscribes the configured
// instruments and turns gateway frames into ticks and book snapshots.
package ingestor

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
)

// Default settings.
const (
	DefaultBatchSize     = 20
	DefaultBatchDelay    = time.Second
	DefaultWriteThrottle = time.Second
	DefaultReconnectBase = time.Second
	DefaultReconnectMax  = 60 * time.Second
)

// Config drives subscription, reconnection and depth collection.
type Config struct {
	Instruments   []string
	BatchSize     int
	BatchDelay    time.Duration
	DepthCutoff   string
	Timezone      string
	ReconnectBase time.Duration
	ReconnectMax  time.Duration
	WriteThrottle time.Duration
}

// Ingestor owns at most one gateway connection at a time.
type Ingestor struct {
	config    Config
	policy    DepthPolicy
	backoff   *backoff.ExponentialBackOff
	throttle  *throttle
	logger    logger.Interface
	now       func() time.Time
	afterFunc func(d time.Duration, fn func()) func() bool

	credentials marketdatav1.CredentialProvider
	dialer      marketdatav1.Dialer
	book        bookv1.Store
	ticks       marketdatav1.TickCache
	publisher   marketdatav1.Publisher

	mu               sync.Mutex
	runCtx           context.Context
	conn             marketdatav1.Conn
	dialing          bool
	stopped          bool
	generation       uint64
	reconnectPending bool
	stopReconnect    func() bool
	cancelSubscribe  context.CancelFunc
	fragments        []byte
	stats            marketdatav1.Stats

	subscribers sync.WaitGroup
}

var _ marketdatav1.Listener = (*Ingestor)(nil)

// NewIngestor validates config and wires the collaborators.
func NewIngestor(
	config Config,
	credentials marketdatav1.CredentialProvider,
	dialer marketdatav1.Dialer,
	book bookv1.Store,
	ticks marketdatav1.TickCache,
	publisher marketdatav1.Publisher,
	log logger.Interface,
	opts ...Option,
) (*Ingestor, error) {
	policy, err := NewDepthPolicy(config.DepthCutoff, config.Timezone)
	if err != nil {
		return nil, err
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.BatchDelay < 0 {
		config.BatchDelay = DefaultBatchDelay
	}
	if config.WriteThrottle <= 0 {
		config.WriteThrottle = DefaultWriteThrottle
	}

	i := &Ingestor{
		config:      config,
		policy:      policy,
		backoff:     newReconnectBackoff(config.ReconnectBase, config.ReconnectMax),
		throttle:    newThrottle(config.WriteThrottle),
		logger:      log,
		now:         time.Now,
		afterFunc:   defaultAfterFunc,
		credentials: credentials,
		dialer:      dialer,
		book:        book,
		ticks:       ticks,
		publisher:   publisher,
		runCtx:      context.Background(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// newReconnectBackoff doubles from base up to max without jitter and never gives up.
func newReconnectBackoff(base, max time.Duration) *backoff.ExponentialBackOff {
	if base <= 0 {
		base = DefaultReconnectBase
	}
	if max <= 0 {
		max = DefaultReconnectMax
	}
	if max < base {
		max = base
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = max
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Connect opens the gateway socket unless one is held or being opened.
// A missing credential is logged and retried later, not returned.
func (i *Ingestor) Connect(ctx context.Context) error {
	i.mu.Lock()
	if i.conn != nil || i.dialing {
		i.mu.Unlock()
		return nil
	}
	i.dialing = true
	i.stopped = false
	i.runCtx = ctx
	i.generation++
	generation := i.generation
	i.mu.Unlock()

	approvalKey, ok := i.credentials.RealtimeCredential(ctx)
	if !ok {
		i.logger.WarnContext(ctx, "realtime credential unavailable, skipping connect")
		i.finishDial(generation)
		return nil
	}

	conn, err := i.dialer.Dial(ctx, &session{ingestor: i, generation: generation})
	if err != nil {
		i.logger.ErrorContext(ctx, errors.NewTracer("gateway dial failed").Wrap(err))
		i.finishDial(generation)
		return err
	}

	i.mu.Lock()
	i.dialing = false
	if i.stopped || i.generation != generation {
		// the socket died or Disconnect ran while dialing
		i.scheduleReconnectLocked()
		i.mu.Unlock()
		_ = conn.Close(ctx)
		return nil
	}
	i.conn = conn
	i.stats.Connected = true
	i.stats.ReconnectAttempts = 0
	i.backoff.Reset()
	i.stats.ExpectedSubscriptions = 0
	i.stats.AcknowledgedSubs = 0
	withDepth := i.policy.Allows(i.now())
	subscribeCtx, cancel := context.WithCancel(ctx)
	i.cancelSubscribe = cancel
	i.subscribers.Add(1)
	i.mu.Unlock()

	i.logger.InfoContext(ctx, "gateway connected",
		logger.Field{Key: "instruments", Value: len(i.config.Instruments)},
		logger.Field{Key: "depth", Value: withDepth},
	)

	go i.subscribe(subscribeCtx, conn, approvalKey, withDepth)
	return nil
}

// finishDial ends a failed attempt and schedules the next one.
func (i *Ingestor) finishDial(generation uint64) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.dialing = false
	if i.generation == generation {
		i.scheduleReconnectLocked()
	}
}

// Disconnect closes the socket and stops reconnecting. Local state is cleared
// even if the close frame cannot be sent.
func (i *Ingestor) Disconnect(ctx context.Context) error {
	i.mu.Lock()
	i.stopped = true
	i.generation++
	conn := i.conn
	i.clearConnLocked()
	if i.stopReconnect != nil {
		i.stopReconnect()
		i.stopReconnect = nil
	}
	i.reconnectPending = false
	i.mu.Unlock()

	i.subscribers.Wait()

	if conn == nil {
		return nil
	}
	if err := conn.Close(ctx); err != nil {
		i.logger.WarnContext(ctx, "gateway close failed", logger.Field{Key: "error", Value: err.Error()})
	}
	i.logger.InfoContext(ctx, "gateway disconnected")
	return nil
}

// Stats returns a copy of the counters.
func (i *Ingestor) Stats() marketdatav1.Stats {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.stats
}

func (i *Ingestor) clearConnLocked() {
	i.conn = nil
	i.fragments = nil
	i.stats.Connected = false
	if i.cancelSubscribe != nil {
		i.cancelSubscribe()
		i.cancelSubscribe = nil
	}
}

// dropped clears connection state after the socket failed and schedules one reconnect.
func (i *Ingestor) dropped() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.generation++
	i.clearConnLocked()
	i.scheduleReconnectLocked()
}

func (i *Ingestor) scheduleReconnectLocked() {
	if i.stopped || i.reconnectPending || i.dialing || i.conn != nil {
		return
	}

	delay := i.backoff.NextBackOff()
	i.stats.ReconnectAttempts++
	i.reconnectPending = true
	ctx := i.runCtx

	i.logger.InfoContext(ctx, "gateway reconnect scheduled",
		logger.Field{Key: "attempt", Value: i.stats.ReconnectAttempts},
		logger.Field{Key: "delay", Value: delay.String()},
	)

	i.stopReconnect = i.afterFunc(delay, func() {
		i.mu.Lock()
		i.reconnectPending = false
		i.stopReconnect = nil
		stopped := i.stopped
		i.mu.Unlock()

		if stopped || ctx.Err() != nil {
			return
		}
		_ = i.Connect(ctx)
	})
}

// subscribe sends tick (and depth) subscriptions batch by batch, waiting
// BatchDelay between batches.
func (i *Ingestor) subscribe(ctx context.Context, conn marketdatav1.Conn, approvalKey string, withDepth bool) {
	defer i.subscribers.Done()

	streams := []string{marketdatav1.TrIDTick}
	if withDepth {
		streams = append(streams, marketdatav1.TrIDDepth)
	}

	for n, batch := range batches(i.config.Instruments, i.config.BatchSize) {
		if n > 0 && !sleep(ctx, i.config.BatchDelay) {
			return
		}
		for _, instrument := range batch {
			for _, trID := range streams {
				payload, err := marketdatav1.NewSubscribeRequest(approvalKey, marketdatav1.TrTypeSubscribe, trID, instrument).Marshal()
				if err != nil {
					i.logger.ErrorContext(ctx, errors.NewTracer("encode subscribe request").Wrap(err))
					return
				}
				if err := conn.WriteMessage(ctx, payload); err != nil {
					i.logger.WarnContext(ctx, "subscribe failed",
						logger.Field{Key: "instrument", Value: instrument},
						logger.Field{Key: "tr_id", Value: trID},
						logger.Field{Key: "error", Value: err.Error()},
					)
					return
				}

				i.mu.Lock()
				i.stats.ExpectedSubscriptions++
				i.mu.Unlock()
			}
		}
	}
}

func batches(instruments []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(instruments); start += size {
		end := min(start+size, len(instruments))
		out = append(out, instruments[start:end])
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// session forwards callbacks of one connection and ignores them once the
// connection was replaced or closed.
type session struct {
	ingestor   *Ingestor
	generation uint64
}

func (s *session) current() bool {
	s.ingestor.mu.Lock()
	defer s.ingestor.mu.Unlock()
	return s.ingestor.generation == s.generation
}

func (s *session) OnOpen() {
	if s.current() {
		s.ingestor.OnOpen()
	}
}

func (s *session) OnMessage(data []byte, final bool) {
	if s.current() {
		s.ingestor.OnMessage(data, final)
	}
}

func (s *session) OnError(err error) {
	if s.current() {
		s.ingestor.OnError(err)
	}
}

func (s *session) OnClose(code int, reason string) {
	if s.current() {
		s.ingestor.OnClose(code, reason)
	}
}
