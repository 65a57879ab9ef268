package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/jackc/pgx/v5"
)

const orderColumns = "id, customer_id, items, status, created_at"

// PostgresOrderRepository stores orders in PostgreSQL through pgx.
type PostgresOrderRepository struct {
	db DBTX
}

var _ order.Repository = (*PostgresOrderRepository)(nil)

// NewPostgresOrderRepository creates a new order repository.
func NewPostgresOrderRepository(db DBTX) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id         int64
		customerID *int64
		items      []byte
		status     string
		createdAt  time.Time
	)
	if err := row.Scan(&id, &customerID, &items, &status, &createdAt); err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:         ident.New(id),
		CustomerID: ident.FromPtr(customerID),
		Status:     order.Status(status),
		CreatedAt:  createdAt,
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %d: %w", id, err)
	}
	return o, nil
}

// FindByID retrieves an order by its ID.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return o, nil
}

// Save inserts a new order or rewrites an existing one.
func (r *PostgresOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	id, assigned := o.ID.Value()
	if !assigned {
		saved, err := scanOrder(r.db.QueryRow(ctx,
			`INSERT INTO orders (customer_id, items, status, created_at)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+orderColumns,
			o.CustomerID.Ptr(), items, string(o.Status), o.CreatedAt,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		return saved, nil
	}

	saved, err := scanOrder(r.db.QueryRow(ctx,
		`UPDATE orders
		 SET customer_id = $2, items = $3, status = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id, o.CustomerID.Ptr(), items, string(o.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, failure.Wrap(failure.ErrNoObjectFound, "order %d", id)
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return saved, nil
}

// UpdateStatus performs a compare-and-set on the order status.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to order.Status) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2",
		id, string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrStatusConflict
	}
	return nil
}
