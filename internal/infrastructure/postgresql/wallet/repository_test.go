package wallet

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	mockLogger "github.com/muhammadchandra19/paper-exchange/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/paper-exchange/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)

type fixture struct {
	pg   *mockPg.MockPostgreSQLClient
	log  *mockLogger.MockInterface
	repo *Repository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		pg:  mockPg.NewMockPostgreSQLClient(ctrl),
		log: mockLogger.NewMockInterface(ctrl),
	}
	f.repo = NewRepository(f.pg, f.log)
	return f
}

func TestWallet_CreditCash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	amount := decimal.NewFromInt(6)
	f.pg.EXPECT().
		Exec(ctx, gomock.Any(), "u-1", amount).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
	f.log.EXPECT().DebugContext(ctx, "Credited cash", gomock.Any())

	assert.NoError(t, f.repo.CreditCash(ctx, "u-1", amount))
}

func TestWallet_CashBalance(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		scanFn   func(dest ...any) error
		expected string
		wantErr  bool
	}{
		{
			name: "existing balance",
			scanFn: func(dest ...any) error {
				*dest[0].(*decimal.Decimal) = decimal.RequireFromString("1250.5")
				return nil
			},
			expected: "1250.5",
		},
		{
			name: "no balance row",
			scanFn: func(dest ...any) error {
				return pgx.ErrNoRows
			},
			expected: "0",
		},
		{
			name: "database error",
			scanFn: func(dest ...any) error {
				return stderrors.New("timeout")
			},
			expected: "0",
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			row := mockPg.NewMockRowInterface(gomock.NewController(t))

			f.pg.EXPECT().QueryRow(ctx, `SELECT balance FROM cash_balances WHERE owner = $1`, "u-1").Return(row)
			row.EXPECT().Scan(gomock.Any()).DoAndReturn(tc.scanFn)

			balance, err := f.repo.CashBalance(ctx, "u-1")
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(balance), "balance %s", balance)
		})
	}
}

func TestWallet_ReservedCash(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		row := mockPg.NewMockRowInterface(gomock.NewController(t))

		f.pg.EXPECT().QueryRow(ctx, gomock.Any(), "o-1").Return(row)
		row.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*dest[0].(*string) = "o-1"
			*dest[1].(*string) = "u-1"
			*dest[2].(*decimal.Decimal) = decimal.NewFromInt(1010)
			*dest[3].(*bool) = false
			*dest[5].(*time.Time) = at
			return nil
		})

		reserved, err := f.repo.ReservedCash(ctx, "o-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", reserved.Owner)
		assert.True(t, decimal.NewFromInt(1010).Equal(reserved.Amount))
		assert.False(t, reserved.Refunded)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		row := mockPg.NewMockRowInterface(gomock.NewController(t))

		f.pg.EXPECT().QueryRow(ctx, gomock.Any(), "o-1").Return(row)
		row.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)

		reserved, err := f.repo.ReservedCash(ctx, "o-1")
		assert.Nil(t, reserved)
		assert.True(t, errors.HasCode(err, errors.ReservedCashMissing))
	})
}

func TestWallet_MarkRefunded(t *testing.T) {
	ctx := context.Background()
	update := `UPDATE reserved_cash SET refunded = TRUE, refunded_at = $2 WHERE order_id = $1 AND refunded = FALSE`

	testCases := []struct {
		name     string
		mockFn   func(f *fixture, row *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "first refund",
			mockFn: func(f *fixture, row *mockPg.MockRowInterface) {
				f.pg.EXPECT().Exec(ctx, update, "o-1", at).Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "second refund",
			mockFn: func(f *fixture, row *mockPg.MockRowInterface) {
				f.pg.EXPECT().Exec(ctx, update, "o-1", at).Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				f.pg.EXPECT().QueryRow(ctx, gomock.Any(), "o-1").Return(row)
				row.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*bool) = true
					return nil
				})
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.HasCode(err, errors.ReservedCashAlreadyRefunded))
			},
		},
		{
			name: "no reserved cash",
			mockFn: func(f *fixture, row *mockPg.MockRowInterface) {
				f.pg.EXPECT().Exec(ctx, update, "o-1", at).Return(pgconn.NewCommandTag("UPDATE 0"), nil)
				f.pg.EXPECT().QueryRow(ctx, gomock.Any(), "o-1").Return(row)
				row.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.HasCode(err, errors.ReservedCashMissing))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			row := mockPg.NewMockRowInterface(gomock.NewController(t))
			tc.mockFn(f, row)

			tc.assertFn(t, f.repo.MarkRefunded(ctx, "o-1", at))
		})
	}
}

func TestWallet_PositionGuards(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		call    func(r *Repository) error
		tag     string
		errCode errors.ErrorCode
	}{
		{
			name: "lock within free quantity",
			call: func(r *Repository) error { return r.LockPosition(ctx, "u-1", "005930", 5) },
			tag:  "UPDATE 1",
		},
		{
			name:    "lock beyond free quantity",
			call:    func(r *Repository) error { return r.LockPosition(ctx, "u-1", "005930", 50) },
			tag:     "UPDATE 0",
			errCode: errors.PositionInsufficient,
		},
		{
			name: "decrease held quantity",
			call: func(r *Repository) error { return r.DecreasePosition(ctx, "u-1", "005930", 5) },
			tag:  "UPDATE 1",
		},
		{
			name:    "decrease beyond quantity",
			call:    func(r *Repository) error { return r.DecreasePosition(ctx, "u-1", "005930", 50) },
			tag:     "UPDATE 0",
			errCode: errors.PositionInsufficient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.pg.EXPECT().Exec(ctx, gomock.Any(), "u-1", "005930", gomock.Any()).Return(pgconn.NewCommandTag(tc.tag), nil)

			err := tc.call(f.repo)
			if tc.errCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.HasCode(err, tc.errCode))
		})
	}
}

func TestWallet_GetPosition_Empty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	row := mockPg.NewMockRowInterface(gomock.NewController(t))

	f.pg.EXPECT().QueryRow(ctx, gomock.Any(), "u-1", "005930").Return(row)
	row.EXPECT().Scan(gomock.Any()).Return(pgx.ErrNoRows)

	position, err := f.repo.GetPosition(ctx, "u-1", "005930")
	require.NoError(t, err)
	assert.Equal(t, int64(0), position.Quantity)
	assert.Equal(t, "005930", position.Instrument)
}

type batchStep struct {
	tag string
	err error
}

type fakeBatchResults struct {
	pgx.BatchResults
	steps    []batchStep
	execs    int
	closed   bool
	closeErr error
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	step := b.steps[b.execs]
	b.execs++
	return pgconn.NewCommandTag(step.tag), step.err
}

func (b *fakeBatchResults) Close() error {
	b.closed = true
	return b.closeErr
}

func TestWallet_SettleSale(t *testing.T) {
	ctx := context.Background()
	proceeds := decimal.NewFromInt(497)

	testCases := []struct {
		name      string
		results   *fakeBatchResults
		wantExecs int
		debugLog  bool
		errCode   errors.ErrorCode
		wantErr   bool
	}{
		{
			name:      "both statements applied",
			results:   &fakeBatchResults{steps: []batchStep{{tag: "UPDATE 1"}, {tag: "INSERT 0 1"}}},
			wantExecs: 2,
			debugLog:  true,
		},
		{
			name:      "position too small",
			results:   &fakeBatchResults{steps: []batchStep{{tag: "UPDATE 0"}, {tag: "INSERT 0 1"}}},
			wantExecs: 1,
			errCode:   errors.PositionInsufficient,
		},
		{
			name:      "credit fails",
			results:   &fakeBatchResults{steps: []batchStep{{tag: "UPDATE 1"}, {err: stderrors.New("conn closed")}}},
			wantExecs: 2,
			wantErr:   true,
		},
		{
			name:      "close fails",
			results:   &fakeBatchResults{steps: []batchStep{{tag: "UPDATE 1"}, {tag: "INSERT 0 1"}}, closeErr: stderrors.New("conn closed")},
			wantExecs: 2,
			debugLog:  true,
			wantErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.pg.EXPECT().SendBatch(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, b *pgx.Batch) pgx.BatchResults {
					require.Equal(t, 2, b.Len())
					assert.Equal(t, decreasePositionQuery, b.QueuedQueries[0].SQL)
					assert.Equal(t, []any{"u-1", "005930", int64(5)}, b.QueuedQueries[0].Arguments)
					assert.Equal(t, creditCashQuery, b.QueuedQueries[1].SQL)
					assert.Equal(t, []any{"u-1", proceeds}, b.QueuedQueries[1].Arguments)
					return tc.results
				})
			if tc.debugLog {
				f.log.EXPECT().DebugContext(ctx, "Settled sale", gomock.Any())
			}

			err := f.repo.SettleSale(ctx, "u-1", "005930", 5, proceeds)
			assert.Equal(t, tc.wantExecs, tc.results.execs)
			assert.True(t, tc.results.closed)
			switch {
			case tc.errCode != "":
				assert.True(t, errors.HasCode(err, tc.errCode))
			case tc.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
