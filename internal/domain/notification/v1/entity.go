package notificationv1

import (
	"encoding/json"
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	"github.com/shopspring/decimal"
)

// ExecutionEvent tells the owner that an order received fills.
type ExecutionEvent struct {
	OrderID         string          `json:"order_id"`
	Owner           string          `json:"owner"`
	Instrument      string          `json:"instrument"`
	Side            orderv1.Side    `json:"side"`
	Status          orderv1.Status  `json:"status"`
	FilledVolume    int64           `json:"filled_volume"`
	FilledValue     decimal.Decimal `json:"filled_value"`
	ExecutedAmount  int64           `json:"executed_amount"`
	RemainingAmount int64           `json:"remaining_amount"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	Fills           []bookv1.Fill   `json:"fills"`
	ExecutedAt      time.Time       `json:"executed_at"`
}

// NewExecutionEvent builds the event for order after it absorbed reservation.
func NewExecutionEvent(order *orderv1.Order, reservation bookv1.Reservation, at time.Time) *ExecutionEvent {
	return &ExecutionEvent{
		OrderID:         order.ID,
		Owner:           order.Owner,
		Instrument:      order.Instrument,
		Side:            order.Side,
		Status:          order.Status,
		FilledVolume:    reservation.Filled,
		FilledValue:     reservation.Value(),
		ExecutedAmount:  order.ExecutedAmount,
		RemainingAmount: order.RemainingAmount,
		AveragePrice:    order.AveragePrice,
		Fills:           reservation.Fills,
		ExecutedAt:      at,
	}
}

// Key partitions events by order.
func (e *ExecutionEvent) Key() []byte {
	return []byte(e.OrderID)
}

// ToBytes encodes the event as JSON.
func (e *ExecutionEvent) ToBytes() ([]byte, error) {
	return json.Marshal(e)
}

// FromBytes decodes an event.
func FromBytes(data []byte) (*ExecutionEvent, error) {
	var event ExecutionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
