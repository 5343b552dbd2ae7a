package walletv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// AverageCostPrecision is the number of decimal places kept on AverageCost.
const AverageCostPrecision int32 = 4

// ReservedCash is cash earmarked for a BUY order at placement.
type ReservedCash struct {
	OrderID    string          `json:"order_id"`
	Owner      string          `json:"owner"`
	Amount     decimal.Decimal `json:"amount"`
	Refunded   bool            `json:"refunded"`
	RefundedAt *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Refund is what goes back to the owner once the true cost is known.
// It is never negative.
func (r *ReservedCash) Refund(actualCost decimal.Decimal) decimal.Decimal {
	refund := r.Amount.Sub(actualCost)
	if refund.IsNegative() {
		return decimal.Zero
	}
	return refund
}

// Position is an owner's holding of one instrument.
// LockedQuantity is the part pledged to resting SELL orders.
type Position struct {
	Owner          string          `json:"owner"`
	Instrument     string          `json:"instrument"`
	Quantity       int64           `json:"quantity"`
	LockedQuantity int64           `json:"locked_quantity"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WeightedAverageCost returns the cost basis after buying qty at price.
func WeightedAverageCost(quantity int64, averageCost decimal.Decimal, qty int64, price decimal.Decimal, precision int32) decimal.Decimal {
	total := quantity + qty
	if total <= 0 {
		return decimal.Zero
	}
	value := averageCost.Mul(decimal.NewFromInt(quantity)).Add(price.Mul(decimal.NewFromInt(qty)))
	return value.DivRound(decimal.NewFromInt(total), precision)
}
