package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/repository"
)

var (
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
	ErrNameRequired         = errors.New("product name is required")
)

type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Price       string   `json:"price"`
}

// ProductService manages the catalogue. Every write returns the full list as
// it stands after the write.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in ProductInput) ([]models.Product, error)
	Update(ctx context.Context, productID string, in ProductInput) ([]models.Product, error)
	Delete(ctx context.Context, productID string, confirmed bool) ([]models.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (p *productService) List(ctx context.Context) ([]models.Product, error) {
	return p.productRepo.List(ctx)
}

func (p *productService) Create(ctx context.Context, in ProductInput) ([]models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Features:    CleanFeatures(in.Features),
		Price:       in.Price,
	}

	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return p.refresh(ctx)
}

func (p *productService) Update(ctx context.Context, productID string, in ProductInput) ([]models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}

	product := &models.Product{
		ID:          productID,
		Name:        in.Name,
		Description: in.Description,
		Features:    CleanFeatures(in.Features),
		Price:       in.Price,
	}

	if err := p.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return p.refresh(ctx)
}

func (p *productService) Delete(ctx context.Context, productID string, confirmed bool) ([]models.Product, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	if err := p.productRepo.Delete(ctx, productID); err != nil {
		return nil, err
	}

	return p.refresh(ctx)
}

func (p *productService) refresh(ctx context.Context) ([]models.Product, error) {
	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("saved, but reloading products failed: %w", err)
	}
	return products, nil
}

// CleanFeatures drops entries that are blank after trimming. The result is
// never nil.
func CleanFeatures(features []string) []string {
	cleaned := make([]string, 0, len(features))
	for _, f := range features {
		if strings.TrimSpace(f) != "" {
			cleaned = append(cleaned, f)
		}
	}
	return cleaned
}
