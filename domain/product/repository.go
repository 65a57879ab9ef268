package product

import "context"

// Repository is the catalog store.
//
// Lookups return (nil, nil) when nothing matches. Implementations must
// enforce name uniqueness atomically (e.g. a unique index) and report a lost
// race as failure.ErrProductAlreadyExists, since the catalog service checks
// uniqueness with a read followed by a write.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	// FindByCategory returns products in storage order.
	FindByCategory(ctx context.Context, category Category) ([]Product, error)
	// Save inserts p when its ID is unassigned and updates it otherwise. The
	// returned product carries the assigned ID.
	Save(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, p *Product) error
}
