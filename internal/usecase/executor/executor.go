// Package executor applies reserved book liquidity to one resting order.
package executor

import (
	"context"
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	notificationv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/notification/v1"
	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	walletv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/wallet/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/muhammadchandra19/paper-exchange/pkg/util"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Result is the outcome of one pass over an order.
type Result struct {
	Reservation bookv1.Reservation
	// Order is the state after commit; nil when nothing was filled.
	Order *orderv1.Order
}

// Filled reports whether the pass applied any execution.
func (r *Result) Filled() bool {
	return r != nil && r.Order != nil && !r.Reservation.Empty()
}

// Executor runs matching passes. Each pass is one database transaction.
type Executor struct {
	orders     orderv1.Repository
	wallet     walletv1.Repository
	index      orderv1.RestingIndex
	matcher    bookv1.Matcher
	transactor postgresql.Transactor
	publisher  notificationv1.Publisher
	logger     logger.Interface
	now        func() time.Time
	newID      func() string
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// WithIDGenerator replaces the ULID generator used for execution ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *Executor) {
		e.newID = newID
	}
}

// NewExecutor creates an Executor. publisher may be nil when notifications are disabled.
func NewExecutor(
	orders orderv1.Repository,
	wallet walletv1.Repository,
	index orderv1.RestingIndex,
	matcher bookv1.Matcher,
	transactor postgresql.Transactor,
	publisher notificationv1.Publisher,
	log logger.Interface,
	opts ...Option,
) *Executor {
	e := &Executor{
		orders:     orders,
		wallet:     wallet,
		index:      index,
		matcher:    matcher,
		transactor: transactor,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
		newID:      func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute reserves liquidity for the remaining amount of order and applies it.
// When the transaction fails the reservation is released and the error returned.
func (e *Executor) Execute(ctx context.Context, order *orderv1.Order) (*Result, error) {
	ctx = util.WithOrderID(ctx, order.ID)
	if order.IsTerminal() || order.RemainingAmount <= 0 {
		return &Result{}, nil
	}

	reservation := e.matcher.Reserve(ctx, order.Instrument, order.Side.BookSide(), order.Price, order.RemainingAmount)
	if reservation.Empty() {
		return &Result{Reservation: reservation}, nil
	}

	var updated *orderv1.Order
	err := e.transactor.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = e.apply(txCtx, order.ID, reservation)
		return err
	})
	if err != nil {
		if releaseErr := e.matcher.Release(ctx, reservation); releaseErr != nil {
			e.logger.ErrorContext(ctx, releaseErr, logger.Field{Key: "version", Value: reservation.Version})
		}
		return nil, err
	}

	e.logger.InfoContext(ctx, "order executed",
		logger.Field{Key: "filled", Value: reservation.Filled},
		logger.Field{Key: "status", Value: updated.Status},
		logger.Field{Key: "average_price", Value: updated.AveragePrice.String()},
		logger.Field{Key: "version", Value: reservation.Version},
	)

	if updated.Status == orderv1.StatusExecuted {
		if _, err := e.index.Remove(ctx, updated.Instrument, updated.Side, updated.ID); err != nil {
			e.logger.ErrorContext(ctx, err)
		}
	}
	e.notify(ctx, updated, reservation)

	return &Result{Reservation: reservation, Order: updated}, nil
}

// apply runs inside the order transaction.
func (e *Executor) apply(ctx context.Context, orderID string, reservation bookv1.Reservation) (*orderv1.Order, error) {
	order, err := e.orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, errors.NewErrorDetailsWithObject("order is no longer resting", string(errors.OrderNotResting), "status", order.ID)
	}
	if reservation.Filled > order.RemainingAmount {
		return nil, errors.NewErrorDetailsWithObject("reservation exceeds remaining amount", string(errors.OrderOverfilled), "remaining_amount", order.ID)
	}

	at := e.now()
	executions := make([]*orderv1.Execution, 0, len(reservation.Fills))
	for _, fill := range reservation.Fills {
		executions = append(executions, &orderv1.Execution{
			ID:         e.newID(),
			OrderID:    order.ID,
			Price:      fill.Price,
			Volume:     fill.Volume,
			ExecutedAt: at,
		})
	}
	if err := e.orders.AppendExecutions(ctx, executions); err != nil {
		return nil, err
	}

	order.ApplyExecutionDelta(reservation.Filled, reservation.Value(), at)
	if err := e.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if order.Side == orderv1.SideSell {
		return order, e.settleSell(ctx, order, reservation)
	}
	return order, e.settleBuy(ctx, order, reservation, at)
}

func (e *Executor) settleBuy(ctx context.Context, order *orderv1.Order, reservation bookv1.Reservation, at time.Time) error {
	for _, fill := range reservation.Fills {
		if err := e.wallet.IncreasePosition(ctx, order.Owner, order.Instrument, fill.Volume, fill.Price); err != nil {
			return err
		}
	}
	if order.Status != orderv1.StatusExecuted {
		return nil
	}

	reserved, err := e.wallet.ReservedCash(ctx, order.ID)
	if err != nil {
		return err
	}
	if reserved.Refunded {
		return errors.NewErrorDetailsWithObject("reserved cash already refunded", string(errors.ReservedCashAlreadyRefunded), "order_id", order.ID)
	}

	if refund := reserved.Refund(order.ExecutedValue); refund.IsPositive() {
		if err := e.wallet.CreditCash(ctx, order.Owner, refund); err != nil {
			return err
		}
	}
	return e.wallet.MarkRefunded(ctx, order.ID, at)
}

// settleSell sums the fills so the wallet moves once per pass.
func (e *Executor) settleSell(ctx context.Context, order *orderv1.Order, reservation bookv1.Reservation) error {
	var (
		volume   int64
		proceeds = decimal.Zero
	)
	for _, fill := range reservation.Fills {
		volume += fill.Volume
		proceeds = proceeds.Add(fill.Price.Mul(decimal.NewFromInt(fill.Volume)))
	}
	if volume == 0 {
		return nil
	}
	return e.wallet.SettleSale(ctx, order.Owner, order.Instrument, volume, proceeds)
}

// notify is fire-and-forget: a failed publish never undoes the execution.
func (e *Executor) notify(ctx context.Context, order *orderv1.Order, reservation bookv1.Reservation) {
	if e.publisher == nil {
		return
	}
	event := notificationv1.NewExecutionEvent(order, reservation, e.now())
	if err := e.publisher.PublishExecution(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, err)
	}
}
