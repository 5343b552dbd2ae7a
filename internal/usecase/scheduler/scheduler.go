// Package scheduler drives periodic matching passes over resting orders.
package scheduler

import (
	"context"
	"time"

	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/executor"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/util"
)

// Default settings.
const (
	DefaultInterval  = time.Second
	DefaultScanLimit = 500
)

// Executor runs one matching pass over one order.
//
//go:generate mockgen -source scheduler.go -destination=mock/scheduler_mock.go -package=scheduler_mock
type Executor interface {
	Execute(ctx context.Context, order *orderv1.Order) (*executor.Result, error)
}

// CycleStats summarizes one cycle.
type CycleStats struct {
	Instruments int
	Orders      int
	Filled      int
	Failed      int
}

// Scheduler scans resting orders every interval.
type Scheduler struct {
	interval  time.Duration
	scanLimit int
	index     orderv1.RestingIndex
	orders    orderv1.Repository
	executor  Executor
	logger    logger.Interface
}

// NewScheduler creates a Scheduler. Non-positive interval or scanLimit take the defaults.
func NewScheduler(interval time.Duration, scanLimit int, index orderv1.RestingIndex, orders orderv1.Repository, exec Executor, log logger.Interface) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &Scheduler{
		interval:  interval,
		scanLimit: scanLimit,
		index:     index,
		orders:    orders,
		executor:  exec,
		logger:    log,
	}
}

// Run executes a cycle every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("matching scheduler started", logger.Field{Key: "interval", Value: s.interval.String()})
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("matching scheduler stopped")
			return nil
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle visits every instrument with resting orders, both sides, oldest
// order first. A failing order is logged and skipped.
func (s *Scheduler) RunCycle(ctx context.Context) CycleStats {
	ctx = util.WithRequestID(ctx, "")
	var stats CycleStats

	instruments, err := s.index.Instruments(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, err)
		return stats
	}
	stats.Instruments = len(instruments)

	for _, instrument := range instruments {
		instrumentCtx := util.WithInstrument(ctx, instrument)
		for _, side := range []orderv1.Side{orderv1.SideBuy, orderv1.SideSell} {
			if ctx.Err() != nil {
				return stats
			}
			s.runSide(instrumentCtx, instrument, side, &stats)
		}
	}

	if stats.Orders > 0 {
		s.logger.DebugContext(ctx, "matching cycle done",
			logger.Field{Key: "instruments", Value: stats.Instruments},
			logger.Field{Key: "orders", Value: stats.Orders},
			logger.Field{Key: "filled", Value: stats.Filled},
			logger.Field{Key: "failed", Value: stats.Failed},
		)
	}
	return stats
}

// runSide pages through the resting orders of one side so orders beyond the
// first scanLimit are visited in the same cycle.
func (s *Scheduler) runSide(ctx context.Context, instrument string, side orderv1.Side, stats *CycleStats) {
	var after *orderv1.Cursor
	for {
		if ctx.Err() != nil {
			return
		}

		orders, err := s.orders.FindResting(ctx, instrument, side, after, s.scanLimit)
		if err != nil {
			s.logger.ErrorContext(ctx, err, logger.Field{Key: "side", Value: side})
			return
		}

		for _, order := range orders {
			stats.Orders++
			result, err := s.executor.Execute(ctx, order)
			if err != nil {
				stats.Failed++
				s.logger.ErrorContext(util.WithOrderID(ctx, order.ID), err)
				continue
			}
			if result.Filled() {
				stats.Filled++
			}
		}

		if len(orders) < s.scanLimit {
			return
		}
		after = orders[len(orders)-1].Cursor()
	}
}
