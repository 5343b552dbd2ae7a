package walletv1

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository is the cash and position side of the wallet. Methods join the
// transaction carried by ctx, if any.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=walletv1_mock
type Repository interface {
	CreditCash(ctx context.Context, owner string, amount decimal.Decimal) error
	// ReserveCash records cash held for a BUY order.
	ReserveCash(ctx context.Context, reserved *ReservedCash) error
	// ReservedCash fails with ReservedCashMissing when the order has none.
	ReservedCash(ctx context.Context, orderID string) (*ReservedCash, error)
	// MarkRefunded fails with ReservedCashAlreadyRefunded on a second call.
	MarkRefunded(ctx context.Context, orderID string, at time.Time) error
	IncreasePosition(ctx context.Context, owner, instrument string, qty int64, price decimal.Decimal) error
	// LockPosition pledges qty for a resting SELL order.
	LockPosition(ctx context.Context, owner, instrument string, qty int64) error
	// DecreasePosition removes qty from both the locked and the total quantity.
	DecreasePosition(ctx context.Context, owner, instrument string, qty int64) error
	// SettleSale applies DecreasePosition(qty) and CreditCash(proceeds) in one
	// round-trip. Callers run it inside a transaction.
	SettleSale(ctx context.Context, owner, instrument string, qty int64, proceeds decimal.Decimal) error
	GetPosition(ctx context.Context, owner, instrument string) (*Position, error)
	CashBalance(ctx context.Context, owner string) (decimal.Decimal, error)
}
