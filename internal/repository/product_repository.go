package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"zurnaWorkshop/internal/models"
)

type ProductRepositoryImpl struct {
	DB *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{DB: db}
}

func (r *ProductRepositoryImpl) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, description, features, price, created_at FROM products ORDER BY name`

	products := []models.Product{}
	err := r.DB.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}

	return products, nil
}

func (r *ProductRepositoryImpl) ListSummaries(ctx context.Context) ([]models.ProductSummary, error) {
	query := `SELECT id, name FROM products ORDER BY name`

	summaries := []models.ProductSummary{}
	err := r.DB.SelectContext(ctx, &summaries, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}

	return summaries, nil
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, features, price, created_at)
		VALUES (:id, :name, :description, :features, :price, :created_at)
	`

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	_, err := r.DB.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}

	return nil
}

// Update overwrites the editable columns. Concurrent edits are last write wins.
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			description = :description,
			features = :features,
			price = :price
		WHERE id = :id
	`

	result, err := r.DB.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("error updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}

	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	return nil
}
