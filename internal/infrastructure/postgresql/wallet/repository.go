// Package wallet stores cash balances, reserved cash and positions in PostgreSQL.
package wallet

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	walletv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/wallet/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/shopspring/decimal"
)

const (
	creditCashQuery       = `INSERT INTO cash_balances (owner, balance, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (owner) DO UPDATE SET balance = cash_balances.balance + EXCLUDED.balance, updated_at = NOW()`
	decreasePositionQuery = `UPDATE positions SET quantity = quantity - $3, locked_quantity = GREATEST(locked_quantity - $3, 0), updated_at = NOW() WHERE owner = $1 AND instrument = $2 AND quantity >= $3`
)

// Repository implements walletv1.Repository.
type Repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ walletv1.Repository = (*Repository)(nil)

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreditCash adds amount to the owner's balance, creating the balance row on first use.
func (r *Repository) CreditCash(ctx context.Context, owner string, amount decimal.Decimal) error {
	if _, err := r.db.Exec(ctx, creditCashQuery, owner, amount); err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.DebugContext(ctx, "Credited cash",
		logger.Field{Key: "owner", Value: owner},
		logger.Field{Key: "amount", Value: amount.String()},
	)
	return nil
}

// CashBalance returns zero for an owner without a balance row.
func (r *Repository) CashBalance(ctx context.Context, owner string) (decimal.Decimal, error) {
	query := `SELECT balance FROM cash_balances WHERE owner = $1`

	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, query, owner).Scan(&balance)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errors.TracerFromError(err)
	}
	return balance, nil
}

// ReserveCash records cash held for a BUY order.
func (r *Repository) ReserveCash(ctx context.Context, reserved *walletv1.ReservedCash) error {
	query := `INSERT INTO reserved_cash (order_id, owner, amount, refunded, created_at) VALUES ($1, $2, $3, FALSE, $4)`

	if _, err := r.db.Exec(ctx, query, reserved.OrderID, reserved.Owner, reserved.Amount, reserved.CreatedAt); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// ReservedCash reads and locks the reserved cash row of an order.
func (r *Repository) ReservedCash(ctx context.Context, orderID string) (*walletv1.ReservedCash, error) {
	query := `SELECT order_id, owner, amount, refunded, refunded_at, created_at FROM reserved_cash WHERE order_id = $1 FOR UPDATE`

	reserved := &walletv1.ReservedCash{}
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&reserved.OrderID,
		&reserved.Owner,
		&reserved.Amount,
		&reserved.Refunded,
		&reserved.RefundedAt,
		&reserved.CreatedAt,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, reservedCashMissing(orderID)
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return reserved, nil
}

// MarkRefunded flips the refunded flag once.
func (r *Repository) MarkRefunded(ctx context.Context, orderID string, at time.Time) error {
	query := `UPDATE reserved_cash SET refunded = TRUE, refunded_at = $2 WHERE order_id = $1 AND refunded = FALSE`

	cmd, err := r.db.Exec(ctx, query, orderID, at)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	// nothing updated: either no row or already refunded
	var refunded bool
	err = r.db.QueryRow(ctx, `SELECT refunded FROM reserved_cash WHERE order_id = $1`, orderID).Scan(&refunded)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return reservedCashMissing(orderID)
	}
	if err != nil {
		return errors.TracerFromError(err)
	}
	return errors.NewErrorDetailsWithObject("reserved cash already refunded", string(errors.ReservedCashAlreadyRefunded), "order_id", orderID)
}

// IncreasePosition adds qty bought at price and recomputes the average cost.
func (r *Repository) IncreasePosition(ctx context.Context, owner, instrument string, qty int64, price decimal.Decimal) error {
	return postgresql.WithTx(ctx, r.db, func(txCtx context.Context) error {
		if _, err := r.db.Exec(txCtx, `INSERT INTO positions (owner, instrument) VALUES ($1, $2) ON CONFLICT (owner, instrument) DO NOTHING`, owner, instrument); err != nil {
			return errors.TracerFromError(err)
		}

		var (
			quantity    int64
			averageCost decimal.Decimal
		)
		err := r.db.QueryRow(txCtx, `SELECT quantity, average_cost FROM positions WHERE owner = $1 AND instrument = $2 FOR UPDATE`, owner, instrument).
			Scan(&quantity, &averageCost)
		if err != nil {
			return errors.TracerFromError(err)
		}

		cost := walletv1.WeightedAverageCost(quantity, averageCost, qty, price, walletv1.AverageCostPrecision)
		query := `UPDATE positions SET quantity = $3, average_cost = $4, updated_at = NOW() WHERE owner = $1 AND instrument = $2`
		if _, err := r.db.Exec(txCtx, query, owner, instrument, quantity+qty, cost); err != nil {
			return errors.TracerFromError(err)
		}
		return nil
	})
}

// LockPosition pledges qty of the free quantity to a resting SELL order.
func (r *Repository) LockPosition(ctx context.Context, owner, instrument string, qty int64) error {
	query := `UPDATE positions SET locked_quantity = locked_quantity + $3, updated_at = NOW() WHERE owner = $1 AND instrument = $2 AND quantity - locked_quantity >= $3`

	cmd, err := r.db.Exec(ctx, query, owner, instrument, qty)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if cmd.RowsAffected() == 0 {
		return positionInsufficient(owner, instrument)
	}
	return nil
}

// DecreasePosition removes sold qty from the total and from the locked part.
func (r *Repository) DecreasePosition(ctx context.Context, owner, instrument string, qty int64) error {
	cmd, err := r.db.Exec(ctx, decreasePositionQuery, owner, instrument, qty)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if cmd.RowsAffected() == 0 {
		return positionInsufficient(owner, instrument)
	}
	return nil
}

// SettleSale sends the position decrease and the cash credit of a SELL as one
// batch. A short position surfaces as PositionInsufficient; the credit still
// ran, so the caller's transaction must roll back.
func (r *Repository) SettleSale(ctx context.Context, owner, instrument string, qty int64, proceeds decimal.Decimal) (err error) {
	batch := &pgx.Batch{}
	batch.Queue(decreasePositionQuery, owner, instrument, qty)
	batch.Queue(creditCashQuery, owner, proceeds)

	results := r.db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = errors.TracerFromError(closeErr)
		}
	}()

	cmd, err := results.Exec()
	if err != nil {
		return errors.TracerFromError(err)
	}
	if cmd.RowsAffected() == 0 {
		return positionInsufficient(owner, instrument)
	}
	if _, err := results.Exec(); err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.DebugContext(ctx, "Settled sale",
		logger.Field{Key: "owner", Value: owner},
		logger.Field{Key: "instrument", Value: instrument},
		logger.Field{Key: "quantity", Value: qty},
		logger.Field{Key: "proceeds", Value: proceeds.String()},
	)
	return nil
}

// GetPosition returns an empty position when the owner never held the instrument.
func (r *Repository) GetPosition(ctx context.Context, owner, instrument string) (*walletv1.Position, error) {
	query := `SELECT owner, instrument, quantity, locked_quantity, average_cost, updated_at FROM positions WHERE owner = $1 AND instrument = $2`

	position := &walletv1.Position{}
	err := r.db.QueryRow(ctx, query, owner, instrument).Scan(
		&position.Owner,
		&position.Instrument,
		&position.Quantity,
		&position.LockedQuantity,
		&position.AverageCost,
		&position.UpdatedAt,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return &walletv1.Position{Owner: owner, Instrument: instrument, AverageCost: decimal.Zero}, nil
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return position, nil
}

func reservedCashMissing(orderID string) error {
	return errors.NewErrorDetailsWithObject("order has no reserved cash", string(errors.ReservedCashMissing), "order_id", orderID)
}

func positionInsufficient(owner, instrument string) error {
	return errors.NewErrorDetailsWithObject("position cannot cover quantity", string(errors.PositionInsufficient), "quantity", owner+"/"+instrument)
}
