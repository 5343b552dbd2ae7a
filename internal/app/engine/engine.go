// Package engine supervises the market data ingestor and the matching
// scheduler as one unit.
package engine

import (
	"context"
	"sync"

	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	tomb "gopkg.in/tomb.v2"
)

// Ingestor owns the gateway socket.
//
//go:generate mockgen -source engine.go -destination=mock/engine_mock.go -package=engine_mock
type Ingestor interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Stats() marketdatav1.Stats
}

// Scheduler runs matching cycles until ctx is done.
type Scheduler interface {
	Run(ctx context.Context) error
}

// Engine runs the ingestor and the scheduler under one tomb. Either failing
// stops both.
type Engine struct {
	ingestor  Ingestor
	scheduler Scheduler
	logger    logger.Interface
	options   *Options

	mu   sync.Mutex
	tomb *tomb.Tomb
}

// NewEngine creates an Engine.
func NewEngine(ingestor Ingestor, scheduler Scheduler, log logger.Interface, opts ...Option) *Engine {
	options := DefaultEngineOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Engine{
		ingestor:  ingestor,
		scheduler: scheduler,
		logger:    log,
		options:   options,
	}
}

// Start launches the supervised goroutines. It fails if the engine already runs.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tomb != nil && e.tomb.Alive() {
		return errors.NewTracer("engine already started")
	}

	t, tctx := tomb.WithContext(ctx)
	e.tomb = t

	t.Go(func() error {
		return e.runIngestor(t, tctx)
	})
	t.Go(func() error {
		return e.scheduler.Run(tctx)
	})

	e.logger.InfoContext(ctx, "engine started", logger.Field{Key: "gateway", Value: e.options.ConnectOnStart})
	return nil
}

func (e *Engine) runIngestor(t *tomb.Tomb, ctx context.Context) error {
	if e.options.ConnectOnStart {
		// a failed dial is retried by the ingestor itself
		if err := e.ingestor.Connect(ctx); err != nil {
			e.logger.WarnContext(ctx, "initial gateway connect failed", logger.Field{Key: "error", Value: err.Error()})
		}
	}

	<-t.Dying()

	disconnectCtx, cancel := context.WithTimeout(context.Background(), e.options.DisconnectTimeout)
	defer cancel()
	return e.ingestor.Disconnect(disconnectCtx)
}

// Stop kills the goroutines and waits for them, bounded by ctx.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	t := e.tomb
	e.mu.Unlock()

	if t == nil {
		return nil
	}
	t.Kill(nil)

	select {
	case <-t.Dead():
		err := t.Err()
		if err != nil {
			e.logger.ErrorContext(ctx, err)
		} else {
			e.logger.InfoContext(ctx, "engine stopped")
		}
		return err
	case <-ctx.Done():
		e.logger.WarnContext(ctx, "engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Dead is closed once every supervised goroutine returned.
func (e *Engine) Dead() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tomb == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return e.tomb.Dead()
}

// Stats exposes the ingestor counters.
func (e *Engine) Stats() marketdatav1.Stats {
	return e.ingestor.Stats()
}
