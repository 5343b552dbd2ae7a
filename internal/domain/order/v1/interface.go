package orderv1

import "context"

// Repository persists orders and their executions. Methods join the
// transaction carried by ctx, if any.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderv1_mock
type Repository interface {
	Store(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// GetForUpdate locks the order row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
	AppendExecutions(ctx context.Context, executions []*Execution) error
	ListExecutions(ctx context.Context, orderID string) ([]*Execution, error)
	// FindResting returns up to limit WAITING and PARTIALLY_EXECUTED orders,
	// oldest first, strictly after the cursor (nil starts from the oldest).
	FindResting(ctx context.Context, instrument string, side Side, after *Cursor, limit int) ([]*Order, error)
	// DeleteCascade removes the order with its executions and reserved cash.
	DeleteCascade(ctx context.Context, id string) error
}

// RestingIndex tracks which instruments have resting orders.
type RestingIndex interface {
	Add(ctx context.Context, order *Order) error
	// Remove reports whether this call removed the order.
	Remove(ctx context.Context, instrument string, side Side, orderID string) (bool, error)
	Instruments(ctx context.Context) ([]string, error)
	OrderIDs(ctx context.Context, instrument string, side Side) ([]string, error)
}
