package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter calls the catalog services over the module's container.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a CatalogPort backed by request-reply calls.
// container is the one received via SetDependencyServiceContainer.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

func (a *catalogAdapter) CreateProduct(ctx context.Context, candidate product.Product) (*product.Product, error) {
	var resp ProductResponse
	req := CreateProductRequest{Product: candidate}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceCreate, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *catalogAdapter) UpdateProduct(ctx context.Context, id int64, changes product.Product) (*product.Product, error) {
	var resp ProductResponse
	req := UpdateProductRequest{ID: id, Changes: changes}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceUpdate, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *catalogAdapter) DeleteProduct(ctx context.Context, id int64) (Acknowledgement, error) {
	var resp AckResponse
	req := ProductIDRequest{ID: id}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDelete,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return Acknowledgement{}, fmt.Errorf("%s service call failed: %w", ServiceDelete, err)
	}
	if err := resp.Error.Err(); err != nil {
		return Acknowledgement{}, err
	}
	if resp.Ack == nil {
		return Acknowledgement{}, fmt.Errorf("product %d not deleted", id)
	}
	return *resp.Ack, nil
}

func (a *catalogAdapter) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	var resp ProductResponse
	req := ProductIDRequest{ID: id}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceGet, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *catalogAdapter) FindProductByCategory(ctx context.Context, raw string) ([]product.Product, error) {
	var resp ProductListResponse
	req := FindByCategoryRequest{Category: raw}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceFindByCategory,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceFindByCategory, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
