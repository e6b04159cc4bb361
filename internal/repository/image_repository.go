package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"zurnaWorkshop/internal/models"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) List(ctx context.Context) ([]models.ProductImage, error) {
	query := `SELECT * FROM product_images ORDER BY created_at DESC`

	images := []models.ProductImage{}
	err := r.db.SelectContext(ctx, &images, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, imageID string) (*models.ProductImage, error) {
	query := `SELECT * FROM product_images WHERE id = $1`

	var image models.ProductImage
	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching image: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, image_url, title, description, is_main, created_at)
		VALUES (:id, :product_id, :image_url, :title, :description, :is_main, :created_at)
	`

	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("error creating image: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM product_images WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("image %s: %w", imageID, ErrNotFound)
	}

	return nil
}
