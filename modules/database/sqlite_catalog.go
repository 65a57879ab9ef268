package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"gorm.io/gorm"
)

// productRecord is the products table row.
type productRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:255;not null;uniqueIndex"`
	Description string    `gorm:"size:1000"`
	Image       string    `gorm:"size:1000"`
	Price       int64     `gorm:"not null"`
	Category    string    `gorm:"size:32;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for productRecord.
func (productRecord) TableName() string {
	return "products"
}

func (r *productRecord) toDomain() *product.Product {
	return &product.Product{
		ID:          ident.New(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		Category:    product.Category(r.Category),
	}
}

// GormCatalogRepository stores products through GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

var _ product.Repository = (*GormCatalogRepository)(nil)

// NewGormCatalogRepository creates a new product repository. The *gorm.DB
// should be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindByID retrieves a product by its ID.
func (r *GormCatalogRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByName retrieves a product by its exact name.
func (r *GormCatalogRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *GormCatalogRepository) first(ctx context.Context, query string, arg any) (*product.Product, error) {
	var rec productRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByCategory retrieves the products of a category ordered by ID.
func (r *GormCatalogRepository) FindByCategory(ctx context.Context, category product.Category) ([]product.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Where("category = ?", string(category)).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}

	products := make([]product.Product, 0, len(recs))
	for i := range recs {
		products = append(products, *recs[i].toDomain())
	}
	return products, nil
}

// Save inserts or updates a product.
func (r *GormCatalogRepository) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	rec := productRecord{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Category:    string(p.Category),
	}

	id, assigned := p.ID.Value()
	if !assigned {
		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, translateProductError(err, p.Name)
		}
		return rec.toDomain(), nil
	}

	rec.ID = id
	result := r.db.WithContext(ctx).Model(&productRecord{ID: id}).
		Select("name", "description", "image", "price", "category").
		Updates(&rec)
	if err := result.Error; err != nil {
		return nil, translateProductError(err, p.Name)
	}
	if result.RowsAffected == 0 {
		return nil, failure.Wrap(failure.ErrProductNotFound, "product %d", id)
	}
	return rec.toDomain(), nil
}

// Delete permanently removes a product.
func (r *GormCatalogRepository) Delete(ctx context.Context, p *product.Product) error {
	id, assigned := p.ID.Value()
	if !assigned {
		return failure.Wrap(failure.ErrProductNotFound, "product has no id")
	}

	if err := r.db.WithContext(ctx).Delete(&productRecord{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func translateProductError(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return failure.Wrap(failure.ErrProductAlreadyExists, "product %q already exists", name)
	}
	return fmt.Errorf("failed to save product: %w", err)
}
