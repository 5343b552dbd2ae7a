package executor_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	bookv1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1/mock"
	notificationv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/notification/v1"
	notificationv1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/notification/v1/mock"
	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	orderv1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1/mock"
	walletv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/wallet/v1"
	walletv1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/wallet/v1/mock"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/executor"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	postgresql_mock "github.com/muhammadchandra19/paper-exchange/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)

type fixture struct {
	orders     *orderv1_mock.MockRepository
	wallet     *walletv1_mock.MockRepository
	index      *orderv1_mock.MockRestingIndex
	matcher    *bookv1_mock.MockMatcher
	transactor *postgresql_mock.MockTransactor
	publisher  *notificationv1_mock.MockPublisher
	executor   *executor.Executor

	// stored is the row behind GetForUpdate and Update.
	stored *orderv1.Order
}

func newFixture(t *testing.T, order *orderv1.Order) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		orders:     orderv1_mock.NewMockRepository(ctrl),
		wallet:     walletv1_mock.NewMockRepository(ctrl),
		index:      orderv1_mock.NewMockRestingIndex(ctrl),
		matcher:    bookv1_mock.NewMockMatcher(ctrl),
		transactor: postgresql_mock.NewMockTransactor(ctrl),
		publisher:  notificationv1_mock.NewMockPublisher(ctrl),
		stored:     copyOrder(order),
	}

	seq := 0
	f.executor = executor.NewExecutor(f.orders, f.wallet, f.index, f.matcher, f.transactor, f.publisher, logger.NewNopLogger(),
		executor.WithClock(func() time.Time { return now }),
		executor.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("exec-%d", seq)
		}),
	)

	f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	f.orders.EXPECT().GetForUpdate(gomock.Any(), order.ID).
		DoAndReturn(func(context.Context, string) (*orderv1.Order, error) {
			return copyOrder(f.stored), nil
		}).AnyTimes()
	f.orders.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *orderv1.Order) error {
			f.stored = copyOrder(o)
			return nil
		}).AnyTimes()
	f.orders.EXPECT().AppendExecutions(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func dec(v int64) gomock.Matcher {
	return decimalMatcher{want: decimal.NewFromInt(v)}
}

func copyOrder(o *orderv1.Order) *orderv1.Order {
	c := *o
	return &c
}

func newOrder(t *testing.T, side orderv1.Side, price int64, amount int64) *orderv1.Order {
	t.Helper()
	order, err := orderv1.NewOrder("o-1", "user-1", "005930", side, decimal.NewFromInt(price), amount, now.Add(-time.Minute))
	require.NoError(t, err)
	return order
}

func reservation(side bookv1.Side, version int64, fills ...bookv1.Fill) bookv1.Reservation {
	r := bookv1.Reservation{Instrument: "005930", Side: side, Version: version, Fills: fills}
	for _, f := range fills {
		r.Filled += f.Volume
	}
	return r
}

func fill(price, volume int64) bookv1.Fill {
	return bookv1.Fill{Price: decimal.NewFromInt(price), Volume: volume}
}

func TestExecutor_BuyPartialThenFull(t *testing.T) {
	order := newOrder(t, orderv1.SideBuy, 101, 10)
	f := newFixture(t, order)
	ctx := context.Background()

	first := reservation(bookv1.SideAsk, 1, fill(100, 6))
	second := reservation(bookv1.SideAsk, 2, fill(101, 4))

	gomock.InOrder(
		f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideAsk, order.Price, int64(10)).Return(first),
		f.wallet.EXPECT().IncreasePosition(gomock.Any(), "user-1", "005930", int64(6), dec(100)).Return(nil),
		f.publisher.EXPECT().PublishExecution(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *notificationv1.ExecutionEvent) error {
				assert.Equal(t, orderv1.StatusPartiallyExecuted, event.Status)
				assert.Equal(t, int64(6), event.FilledVolume)
				return nil
			}),
	)

	result, err := f.executor.Execute(ctx, order)
	require.NoError(t, err)
	require.True(t, result.Filled())
	assert.Equal(t, orderv1.StatusPartiallyExecuted, result.Order.Status)
	assert.Equal(t, int64(4), result.Order.RemainingAmount)

	gomock.InOrder(
		f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideAsk, order.Price, int64(4)).Return(second),
		f.wallet.EXPECT().IncreasePosition(gomock.Any(), "user-1", "005930", int64(4), dec(101)).Return(nil),
		f.wallet.EXPECT().ReservedCash(gomock.Any(), "o-1").Return(&walletv1.ReservedCash{
			OrderID: "o-1",
			Owner:   "user-1",
			Amount:  decimal.NewFromInt(1010),
		}, nil),
		// reserved 1010, cost 6*100 + 4*101 = 1004
		f.wallet.EXPECT().CreditCash(gomock.Any(), "user-1", dec(6)).Return(nil),
		f.wallet.EXPECT().MarkRefunded(gomock.Any(), "o-1", now).Return(nil).Times(1),
		f.index.EXPECT().Remove(gomock.Any(), "005930", orderv1.SideBuy, "o-1").Return(true, nil),
		f.publisher.EXPECT().PublishExecution(gomock.Any(), gomock.Any()).Return(nil),
	)

	result, err = f.executor.Execute(ctx, result.Order)
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusExecuted, result.Order.Status)
	assert.Equal(t, int64(10), result.Order.ExecutedAmount)
	assert.Zero(t, result.Order.RemainingAmount)
	assert.Equal(t, "100.4", result.Order.AveragePrice.String())

	// a terminal order is not matched again
	result, err = f.executor.Execute(ctx, result.Order)
	require.NoError(t, err)
	assert.False(t, result.Filled())
}

func TestExecutor_NoLiquidity(t *testing.T) {
	order := newOrder(t, orderv1.SideBuy, 101, 10)
	f := newFixture(t, order)

	f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideAsk, order.Price, int64(10)).
		Return(bookv1.Reservation{Instrument: "005930", Side: bookv1.SideAsk})

	result, err := f.executor.Execute(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, result.Filled())
	assert.Equal(t, orderv1.StatusWaiting, f.stored.Status)
}

func TestExecutor_Sell(t *testing.T) {
	order := newOrder(t, orderv1.SideSell, 99, 5)
	f := newFixture(t, order)

	r := reservation(bookv1.SideBid, 3, fill(100, 2), fill(99, 3))
	f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideBid, order.Price, int64(5)).Return(r)
	f.wallet.EXPECT().SettleSale(gomock.Any(), "user-1", "005930", int64(5), dec(497)).Return(nil).Times(1)
	f.index.EXPECT().Remove(gomock.Any(), "005930", orderv1.SideSell, "o-1").Return(true, nil)
	f.publisher.EXPECT().PublishExecution(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.executor.Execute(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusExecuted, result.Order.Status)
	assert.Equal(t, "99.4", result.Order.AveragePrice.String())
}

func TestExecutor_SellShortPositionRollsBack(t *testing.T) {
	order := newOrder(t, orderv1.SideSell, 99, 5)
	f := newFixture(t, order)

	r := reservation(bookv1.SideBid, 3, fill(100, 2), fill(99, 3))
	f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideBid, order.Price, int64(5)).Return(r)
	f.wallet.EXPECT().SettleSale(gomock.Any(), "user-1", "005930", int64(5), dec(497)).
		Return(errors.NewErrorDetails("position cannot cover quantity", string(errors.PositionInsufficient), "quantity"))
	f.matcher.EXPECT().Release(gomock.Any(), r).Return(nil).Times(1)

	result, err := f.executor.Execute(context.Background(), order)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.HasCode(err, errors.PositionInsufficient), err.Error())
}

// A cancel that commits first wins: the fill is refused and nothing moves.
func TestExecutor_FillAfterCancelIsRefused(t *testing.T) {
	order := newOrder(t, orderv1.SideSell, 99, 5)
	f := newFixture(t, order)
	require.NoError(t, f.stored.Cancel(now))

	r := reservation(bookv1.SideBid, 3, fill(100, 5))
	f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideBid, order.Price, int64(5)).Return(r)
	f.matcher.EXPECT().Release(gomock.Any(), r).Return(nil).Times(1)

	result, err := f.executor.Execute(context.Background(), order)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.HasCode(err, errors.OrderNotResting), err.Error())
	assert.Equal(t, orderv1.StatusCanceled, f.stored.Status)
	assert.Zero(t, f.stored.ExecutedAmount)
}

func TestExecutor_RollbackReleasesReservation(t *testing.T) {
	testCases := []struct {
		name   string
		stored func(o *orderv1.Order)
		wallet func(f *fixture)
		code   errors.ErrorCode
	}{
		{
			name: "position update fails",
			wallet: func(f *fixture) {
				f.wallet.EXPECT().IncreasePosition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.NewTracer("connection reset").Wrap(fmt.Errorf("eof")))
			},
		},
		{
			name: "reserved cash missing on full fill",
			wallet: func(f *fixture) {
				f.wallet.EXPECT().IncreasePosition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.wallet.EXPECT().ReservedCash(gomock.Any(), "o-1").
					Return(nil, errors.NewErrorDetails("no reserved cash", string(errors.ReservedCashMissing), "order_id"))
			},
			code: errors.ReservedCashMissing,
		},
		{
			name: "reserved cash already refunded",
			wallet: func(f *fixture) {
				f.wallet.EXPECT().IncreasePosition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.wallet.EXPECT().ReservedCash(gomock.Any(), "o-1").
					Return(&walletv1.ReservedCash{OrderID: "o-1", Amount: decimal.NewFromInt(1010), Refunded: true}, nil)
			},
			code: errors.ReservedCashAlreadyRefunded,
		},
		{
			name: "order canceled meanwhile",
			stored: func(o *orderv1.Order) {
				require.NoError(t, o.Cancel(now))
			},
			code: errors.OrderNotResting,
		},
		{
			name: "reservation larger than remaining",
			stored: func(o *orderv1.Order) {
				o.ApplyExecutionDelta(8, decimal.NewFromInt(800), now)
			},
			code: errors.OrderOverfilled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := newOrder(t, orderv1.SideBuy, 101, 10)
			f := newFixture(t, order)
			if tc.stored != nil {
				tc.stored(f.stored)
			}
			if tc.wallet != nil {
				tc.wallet(f)
			}

			r := reservation(bookv1.SideAsk, 1, fill(100, 10))
			f.matcher.EXPECT().Reserve(gomock.Any(), "005930", bookv1.SideAsk, order.Price, int64(10)).Return(r)
			f.matcher.EXPECT().Release(gomock.Any(), r).Return(nil).Times(1)

			result, err := f.executor.Execute(context.Background(), order)
			require.Error(t, err)
			assert.Nil(t, result)
			if tc.code != "" {
				assert.True(t, errors.HasCode(err, tc.code), err.Error())
			}
		})
	}
}

func TestExecutor_PublishFailureIsIgnored(t *testing.T) {
	order := newOrder(t, orderv1.SideBuy, 101, 10)
	f := newFixture(t, order)

	f.matcher.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(reservation(bookv1.SideAsk, 1, fill(100, 3)))
	f.wallet.EXPECT().IncreasePosition(gomock.Any(), "user-1", "005930", int64(3), dec(100)).Return(nil)
	f.publisher.EXPECT().PublishExecution(gomock.Any(), gomock.Any()).Return(fmt.Errorf("broker down"))

	result, err := f.executor.Execute(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Order.ExecutedAmount)
}

func TestExecutor_WithoutPublisher(t *testing.T) {
	order := newOrder(t, orderv1.SideBuy, 101, 10)
	ctrl := gomock.NewController(t)
	matcher := bookv1_mock.NewMockMatcher(ctrl)
	orders := orderv1_mock.NewMockRepository(ctrl)
	wallet := walletv1_mock.NewMockRepository(ctrl)
	transactor := postgresql_mock.NewMockTransactor(ctrl)

	e := executor.NewExecutor(orders, wallet, orderv1_mock.NewMockRestingIndex(ctrl), matcher, transactor, nil, logger.NewNopLogger())

	matcher.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(reservation(bookv1.SideAsk, 1, fill(100, 1)))
	transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
	orders.EXPECT().GetForUpdate(gomock.Any(), "o-1").Return(copyOrder(order), nil)
	orders.EXPECT().AppendExecutions(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, executions []*orderv1.Execution) error {
			assert.Len(t, executions[0].ID, 26, "ulid")
			return nil
		})
	orders.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	wallet.EXPECT().IncreasePosition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := e.Execute(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, result.Filled())
}
