package order

import (
	"context"
	"errors"
)

// ErrStatusConflict is returned by UpdateStatus when the stored status no
// longer matches the expected one.
var ErrStatusConflict = errors.New("order status changed concurrently")

// Repository is the order store.
type Repository interface {
	// FindByID returns (nil, nil) when no order has the given key.
	FindByID(ctx context.Context, id int64) (*Order, error)
	// Save inserts o when its ID is unassigned and updates it otherwise.
	Save(ctx context.Context, o *Order) (*Order, error)
	// UpdateStatus atomically sets the status to `to` only if it is
	// currently `from`, returning ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, id int64, from, to Status) error
}
