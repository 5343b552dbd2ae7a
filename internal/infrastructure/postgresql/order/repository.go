// Package order is the PostgreSQL store for orders and their executions.
package order

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
)

var orderColumns = []string{
	"id",
	"owner",
	"instrument",
	"side",
	"price",
	"amount",
	"executed_amount",
	"remaining_amount",
	"executed_value",
	"average_price",
	"status",
	"created_at",
	"executed_at",
	"updated_at",
}

// Repository implements orderv1.Repository.
type Repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ orderv1.Repository = (*Repository)(nil)

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Store inserts a new order.
func (r *Repository) Store(ctx context.Context, order *orderv1.Order) error {
	query := `INSERT INTO orders (id, owner, instrument, side, price, amount, executed_amount, remaining_amount, executed_value, average_price, status, created_at, executed_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	cmd, err := r.db.Exec(ctx, query,
		order.ID,
		order.Owner,
		order.Instrument,
		string(order.Side),
		order.Price,
		order.Amount,
		order.ExecutedAmount,
		order.RemainingAmount,
		order.ExecutedValue,
		order.AveragePrice,
		string(order.Status),
		order.CreatedAt,
		order.ExecutedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.InfoContext(ctx, "Inserted order", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID reads an order without locking it.
func (r *Repository) GetByID(ctx context.Context, id string) (*orderv1.Order, error) {
	query, args := postgresql.NewSelectBuilder().
		Select(orderColumns...).
		From("orders").
		Where("id = ?", id).
		Build()

	return r.getOne(ctx, id, query, args)
}

// GetForUpdate reads an order and locks its row until the transaction in ctx ends.
func (r *Repository) GetForUpdate(ctx context.Context, id string) (*orderv1.Order, error) {
	query, args := postgresql.NewSelectBuilder().
		Select(orderColumns...).
		From("orders").
		Where("id = ?", id).
		ForUpdate(false).
		Build()

	return r.getOne(ctx, id, query, args)
}

func (r *Repository) getOne(ctx context.Context, id, query string, args []any) (*orderv1.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewErrorDetailsWithObject("order not found", string(errors.OrderNotFound), "id", id)
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return order, nil
}

// Update writes the execution progress of an order.
func (r *Repository) Update(ctx context.Context, order *orderv1.Order) error {
	query := `UPDATE orders SET executed_amount = $1, remaining_amount = $2, executed_value = $3, average_price = $4, status = $5, executed_at = $6, updated_at = $7 WHERE id = $8`

	cmd, err := r.db.Exec(ctx, query,
		order.ExecutedAmount,
		order.RemainingAmount,
		order.ExecutedValue,
		order.AveragePrice,
		string(order.Status),
		order.ExecutedAt,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if cmd.RowsAffected() == 0 {
		return errors.NewErrorDetailsWithObject("order not found", string(errors.OrderNotFound), "id", order.ID)
	}

	r.logger.DebugContext(ctx, "Updated order", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// AppendExecutions inserts executions in one statement.
func (r *Repository) AppendExecutions(ctx context.Context, executions []*orderv1.Execution) error {
	if len(executions) == 0 {
		return nil
	}

	var (
		values = make([]string, 0, len(executions))
		args   = make([]any, 0, len(executions)*5)
	)
	for i, execution := range executions {
		n := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5))
		args = append(args,
			execution.ID,
			execution.OrderID,
			execution.Price,
			execution.Volume,
			execution.ExecutedAt,
		)
	}
	query := `INSERT INTO order_executions (id, order_id, price, volume, executed_at) VALUES ` + strings.Join(values, ", ")

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.DebugContext(ctx, "Inserted executions", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// ListExecutions returns executions of one order, oldest first.
func (r *Repository) ListExecutions(ctx context.Context, orderID string) ([]*orderv1.Execution, error) {
	query := `SELECT id, order_id, price, volume, executed_at FROM order_executions WHERE order_id = $1 ORDER BY executed_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	executions := []*orderv1.Execution{}
	for rows.Next() {
		execution := &orderv1.Execution{}
		err := rows.Scan(
			&execution.ID,
			&execution.OrderID,
			&execution.Price,
			&execution.Volume,
			&execution.ExecutedAt,
		)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		executions = append(executions, execution)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return executions, nil
}

// FindResting lists resting orders of one instrument and side in time priority,
// keyset-paged on (created_at, id).
func (r *Repository) FindResting(ctx context.Context, instrument string, side orderv1.Side, after *orderv1.Cursor, limit int) ([]*orderv1.Order, error) {
	statuses := make([]any, 0, len(orderv1.RestingStatuses))
	for _, status := range orderv1.RestingStatuses {
		statuses = append(statuses, string(status))
	}

	builder := postgresql.NewSelectBuilder().
		Select(orderColumns...).
		From("orders").
		Where("instrument = ?", instrument).
		Where("side = ?", string(side)).
		WhereIn("status", statuses...)
	if after != nil {
		builder = builder.Where("(created_at, id) > (?, ?)", after.CreatedAt, after.ID)
	}
	builder = builder.
		OrderBy("created_at").
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args := builder.Build()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	orders := []*orderv1.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return orders, nil
}

// DeleteCascade removes an order with its executions and reserved cash.
func (r *Repository) DeleteCascade(ctx context.Context, id string) error {
	return postgresql.WithTx(ctx, r.db, func(txCtx context.Context) error {
		if _, err := r.db.Exec(txCtx, `DELETE FROM order_executions WHERE order_id = $1`, id); err != nil {
			return errors.TracerFromError(err)
		}
		if _, err := r.db.Exec(txCtx, `DELETE FROM reserved_cash WHERE order_id = $1`, id); err != nil {
			return errors.TracerFromError(err)
		}
		cmd, err := r.db.Exec(txCtx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return errors.TracerFromError(err)
		}
		if cmd.RowsAffected() == 0 {
			return errors.NewErrorDetailsWithObject("order not found", string(errors.OrderNotFound), "id", id)
		}
		return nil
	})
}

func scanOrder(row postgresql.RowInterface) (*orderv1.Order, error) {
	var (
		order  = &orderv1.Order{}
		side   string
		status string
	)
	err := row.Scan(
		&order.ID,
		&order.Owner,
		&order.Instrument,
		&side,
		&order.Price,
		&order.Amount,
		&order.ExecutedAmount,
		&order.RemainingAmount,
		&order.ExecutedValue,
		&order.AveragePrice,
		&status,
		&order.CreatedAt,
		&order.ExecutedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Side = orderv1.Side(side)
	order.Status = orderv1.Status(status)
	return order, nil
}
