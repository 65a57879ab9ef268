package cache

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

const categoryKeyPattern = "category:*"

func categoryKey(c product.Category) string {
	return "category:" + string(c)
}

// CatalogRepository decorates a product.Repository with a read-through cache
// for category listings. Writes go to the wrapped store first and then drop
// every cached listing. Lookups by ID or name are not cached because the
// catalog uses them for uniqueness and existence checks.
type CatalogRepository struct {
	next    product.Repository
	store   Store
	logger  types.Logger
	sfGroup singleflight.Group

	// generation is bumped by every write before listings are dropped.
	generation atomic.Uint64
}

var _ product.Repository = (*CatalogRepository)(nil)

// NewCatalogRepository wraps next with store.
func NewCatalogRepository(next product.Repository, store Store, logger types.Logger) *CatalogRepository {
	return &CatalogRepository{next: next, store: store, logger: logger}
}

// FindByID delegates to the wrapped store.
func (r *CatalogRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.next.FindByID(ctx, id)
}

// FindByName delegates to the wrapped store.
func (r *CatalogRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	return r.next.FindByName(ctx, name)
}

// FindByCategory serves the listing from cache when present. Concurrent
// misses for the same category share one store query.
func (r *CatalogRepository) FindByCategory(ctx context.Context, category product.Category) ([]product.Product, error) {
	key := categoryKey(category)

	var cached []product.Product
	found, err := r.store.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("Cache read failed, falling back to store", "key", key, "error", err)
	}
	if found {
		r.logger.Debug("Cache hit", "key", key)
		return cached, nil
	}

	// A flight only serves callers that started after the same write, so a
	// listing read before a write is never shared with a later caller.
	gen := r.generation.Load()
	val, err, _ := r.sfGroup.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		return r.next.FindByCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	products := val.([]product.Product)

	if r.generation.Load() != gen {
		return products, nil
	}
	if err := r.store.Set(ctx, key, products); err != nil {
		r.logger.Warn("Failed to populate cache", "key", key, "error", err)
		return products, nil
	}
	// A write that committed while the listing was being stored may have
	// invalidated before Set landed.
	if r.generation.Load() != gen {
		if err := r.store.Delete(ctx, key); err != nil {
			r.logger.Warn("Failed to drop stale listing", "key", key, "error", err)
		}
	}
	return products, nil
}

// Save writes through and invalidates cached listings.
func (r *CatalogRepository) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	saved, err := r.next.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return saved, nil
}

// Delete writes through and invalidates cached listings.
func (r *CatalogRepository) Delete(ctx context.Context, p *product.Product) error {
	if err := r.next.Delete(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CatalogRepository) invalidate(ctx context.Context) {
	r.generation.Add(1)
	if err := r.store.DeletePattern(ctx, categoryKeyPattern); err != nil {
		r.logger.Warn("Failed to invalidate category listings", "error", err)
	}
}
