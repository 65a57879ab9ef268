package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/jackc/pgx/v5"
)

const productColumns = "id, name, description, image, price, category"

// PostgresCatalogRepository stores products in PostgreSQL through pgx.
type PostgresCatalogRepository struct {
	db DBTX
}

var _ product.Repository = (*PostgresCatalogRepository)(nil)

// NewPostgresCatalogRepository creates a new product repository.
func NewPostgresCatalogRepository(db DBTX) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var (
		p        product.Product
		id       int64
		category string
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &p.Image, &p.Price, &category); err != nil {
		return nil, err
	}
	p.ID = ident.New(id)
	p.Category = product.Category(category)
	return &p, nil
}

// FindByID retrieves a product by its ID.
func (r *PostgresCatalogRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.queryOne(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

// FindByName retrieves a product by its exact name.
func (r *PostgresCatalogRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	return r.queryOne(ctx, "SELECT "+productColumns+" FROM products WHERE name = $1", name)
}

func (r *PostgresCatalogRepository) queryOne(ctx context.Context, sql string, arg any) (*product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindByCategory retrieves the products of a category ordered by ID.
func (r *PostgresCatalogRepository) FindByCategory(ctx context.Context, category product.Category) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, "SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY id", string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	defer rows.Close()

	products := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// Save inserts or updates a product.
func (r *PostgresCatalogRepository) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	id, assigned := p.ID.Value()
	if !assigned {
		saved, err := scanProduct(r.db.QueryRow(ctx,
			`INSERT INTO products (name, description, image, price, category)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+productColumns,
			p.Name, p.Description, p.Image, p.Price, string(p.Category),
		))
		if err != nil {
			return nil, translatePgProductError(err, p.Name)
		}
		return saved, nil
	}

	saved, err := scanProduct(r.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, image = $4, price = $5, category = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, p.Name, p.Description, p.Image, p.Price, string(p.Category),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, failure.Wrap(failure.ErrProductNotFound, "product %d", id)
		}
		return nil, translatePgProductError(err, p.Name)
	}
	return saved, nil
}

// Delete permanently removes a product.
func (r *PostgresCatalogRepository) Delete(ctx context.Context, p *product.Product) error {
	id, assigned := p.ID.Value()
	if !assigned {
		return failure.Wrap(failure.ErrProductNotFound, "product has no id")
	}
	if _, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func translatePgProductError(err error, name string) error {
	if isPgDuplicateKeyError(err) {
		return failure.Wrap(failure.ErrProductAlreadyExists, "product %q already exists", name)
	}
	return fmt.Errorf("failed to save product: %w", err)
}
