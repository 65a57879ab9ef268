package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"gorm.io/gorm"
)

// orderRecord is the orders table row. Items are kept as a JSON document.
type orderRecord struct {
	ID         int64             `gorm:"primaryKey;autoIncrement"`
	CustomerID *int64            `gorm:"index"`
	Items      []order.OrderItem `gorm:"serializer:json;type:text;not null"`
	Status     string            `gorm:"size:32;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for orderRecord.
func (orderRecord) TableName() string {
	return "orders"
}

func (r *orderRecord) toDomain() *order.Order {
	return &order.Order{
		ID:         ident.New(r.ID),
		CustomerID: ident.FromPtr(r.CustomerID),
		Items:      r.Items,
		Status:     order.Status(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

// GormOrderRepository stores orders through GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

var _ order.Repository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID retrieves an order by its ID.
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return rec.toDomain(), nil
}

// Save inserts a new order or rewrites an existing one.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	rec := orderRecord{
		CustomerID: o.CustomerID.Ptr(),
		Items:      o.Items,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}

	id, assigned := o.ID.Value()
	if !assigned {
		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		return rec.toDomain(), nil
	}

	rec.ID = id
	result := r.db.WithContext(ctx).Model(&orderRecord{ID: id}).
		Select("customer_id", "items", "status").
		Updates(&rec)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, failure.Wrap(failure.ErrNoObjectFound, "order %d", id)
	}
	return rec.toDomain(), nil
}

// UpdateStatus performs a compare-and-set on the order status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to order.Status) error {
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected == 0 {
		return order.ErrStatusConflict
	}
	return nil
}
