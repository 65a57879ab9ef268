package catalog

import (
	"context"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/product"
)

// Service names registered in the catalog container.
const (
	ServiceCreate         = "create"
	ServiceUpdate         = "update"
	ServiceDelete         = "delete"
	ServiceGet            = "get"
	ServiceFindByCategory = "find-by-category"
)

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Product product.Product `json:"product"`
}

// UpdateProductRequest is the request for replacing a product's fields.
type UpdateProductRequest struct {
	ID      int64           `json:"id"`
	Changes product.Product `json:"changes"`
}

// ProductIDRequest addresses a single product.
type ProductIDRequest struct {
	ID int64 `json:"id"`
}

// FindByCategoryRequest is the request for listing a category.
type FindByCategoryRequest struct {
	Category string `json:"category"`
}

// ProductResponse carries a product or the error that prevented it.
type ProductResponse struct {
	Product *product.Product `json:"product,omitempty"`
	Error   *failure.Reply   `json:"error,omitempty"`
}

// ProductListResponse carries a category listing.
type ProductListResponse struct {
	Products []product.Product `json:"products,omitempty"`
	Error    *failure.Reply    `json:"error,omitempty"`
}

// AckResponse carries a deletion acknowledgement.
type AckResponse struct {
	Ack   *Acknowledgement `json:"ack,omitempty"`
	Error *failure.Reply   `json:"error,omitempty"`
}

// CatalogPort is the contract driving adapters use to reach the catalog.
// Both *Service and the request-reply adapter satisfy it.
type CatalogPort interface {
	CreateProduct(ctx context.Context, candidate product.Product) (*product.Product, error)
	UpdateProduct(ctx context.Context, id int64, changes product.Product) (*product.Product, error)
	DeleteProduct(ctx context.Context, id int64) (Acknowledgement, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	FindProductByCategory(ctx context.Context, raw string) ([]product.Product, error)
}

var _ CatalogPort = (*Service)(nil)
