package orderv1

import (
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/shopspring/decimal"
)

// AveragePricePrecision is the number of decimal places kept on AveragePrice.
const AveragePricePrecision int32 = 4

// Side is the direction of an order.
type Side string

const (
	// SideBuy buys by consuming asks.
	SideBuy Side = "BUY"
	// SideSell sells by consuming bids.
	SideSell Side = "SELL"
)

// BookSide returns the side of the book this order consumes.
func (s Side) BookSide() bookv1.Side {
	if s == SideSell {
		return bookv1.SideBid
	}
	return bookv1.SideAsk
}

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Status is the lifecycle state of an order.
type Status string

// Order statuses. EXECUTED, CANCELED and CANCELED_AFTER_PARTIAL are terminal.
const (
	StatusWaiting              Status = "WAITING"
	StatusPartiallyExecuted    Status = "PARTIALLY_EXECUTED"
	StatusExecuted             Status = "EXECUTED"
	StatusCanceled             Status = "CANCELED"
	StatusCanceledAfterPartial Status = "CANCELED_AFTER_PARTIAL"
)

// RestingStatuses are the statuses still eligible for matching.
var RestingStatuses = []Status{StatusWaiting, StatusPartiallyExecuted}

// Cursor is a position in time priority, (created_at, id).
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Cursor returns the time priority position of the order.
func (o *Order) Cursor() *Cursor {
	return &Cursor{CreatedAt: o.CreatedAt, ID: o.ID}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusExecuted, StatusCanceled, StatusCanceledAfterPartial:
		return true
	}
	return false
}

// Order is a limit order. ExecutedAmount + RemainingAmount == Amount holds after every mutation.
type Order struct {
	ID              string          `json:"id"`
	Owner           string          `json:"owner"`
	Instrument      string          `json:"instrument"`
	Side            Side            `json:"side"`
	Price           decimal.Decimal `json:"price"`
	Amount          int64           `json:"amount"`
	ExecutedAmount  int64           `json:"executed_amount"`
	RemainingAmount int64           `json:"remaining_amount"`
	// ExecutedValue is the exact Σ price*volume of every fill.
	ExecutedValue decimal.Decimal `json:"executed_value"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	ExecutedAt    *time.Time      `json:"executed_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewOrder creates a WAITING order.
func NewOrder(id, owner, instrument string, side Side, price decimal.Decimal, amount int64, at time.Time) (*Order, error) {
	errs := errors.NewBaseError()
	if id == "" {
		errs.AddErrorDetails(errors.NewErrorDetails("order id is required", string(errors.OrderInvalid), "id"))
	}
	if instrument == "" {
		errs.AddErrorDetails(errors.NewErrorDetails("instrument is required", string(errors.OrderInvalid), "instrument"))
	}
	if !side.Valid() {
		errs.AddErrorDetails(errors.NewErrorDetails("side must be BUY or SELL", string(errors.OrderInvalid), "side"))
	}
	if !price.IsPositive() {
		errs.AddErrorDetails(errors.NewErrorDetails("price must be positive", string(errors.OrderInvalid), "price"))
	}
	if amount <= 0 {
		errs.AddErrorDetails(errors.NewErrorDetails("amount must be positive", string(errors.OrderInvalid), "amount"))
	}
	if errs.HasDetails() {
		return nil, errs
	}

	return &Order{
		ID:              id,
		Owner:           owner,
		Instrument:      instrument,
		Side:            side,
		Price:           price,
		Amount:          amount,
		RemainingAmount: amount,
		ExecutedValue:   decimal.Zero,
		AveragePrice:    decimal.Zero,
		Status:          StatusWaiting,
		CreatedAt:       at,
		UpdatedAt:       at,
	}, nil
}

// IsTerminal reports whether the order can no longer change.
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ApplyExecutionDelta books deltaVolume units worth deltaValue. It returns false,
// leaving the order untouched, when deltaVolume <= 0 or the order is terminal.
func (o *Order) ApplyExecutionDelta(deltaVolume int64, deltaValue decimal.Decimal, at time.Time) bool {
	if deltaVolume <= 0 || o.IsTerminal() {
		return false
	}

	o.ExecutedAmount += deltaVolume
	o.ExecutedValue = o.ExecutedValue.Add(deltaValue)
	o.RemainingAmount = max(0, o.Amount-o.ExecutedAmount)
	o.AveragePrice = o.ExecutedValue.DivRound(decimal.NewFromInt(o.ExecutedAmount), AveragePricePrecision)

	if o.RemainingAmount == 0 {
		o.Status = StatusExecuted
	} else {
		o.Status = StatusPartiallyExecuted
	}

	executedAt := at
	o.ExecutedAt = &executedAt
	o.UpdatedAt = at
	return true
}

// Cancel moves a resting order to CANCELED, or CANCELED_AFTER_PARTIAL once it has fills.
func (o *Order) Cancel(at time.Time) error {
	switch o.Status {
	case StatusWaiting:
		o.Status = StatusCanceled
	case StatusPartiallyExecuted:
		o.Status = StatusCanceledAfterPartial
	default:
		return errors.NewErrorDetailsWithObject("order cannot be canceled from "+string(o.Status), string(errors.OrderInvalidTransition), "status", o.ID)
	}
	o.UpdatedAt = at
	return nil
}

// Execution is an immutable fill record.
type Execution struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Price      decimal.Decimal `json:"price"`
	Volume     int64           `json:"volume"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// Value is price * volume.
func (e *Execution) Value() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(e.Volume))
}
