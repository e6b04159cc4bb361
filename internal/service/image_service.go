package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/repository"
	"zurnaWorkshop/internal/storage"
)

const UnknownProductName = "Bilinmeyen Ürün"

var (
	ErrNotAnImage       = errors.New("file is not an image")
	ErrMissingSelection = errors.New("file and product must be selected")
)

type ImageView struct {
	models.ProductImage
	ProductName string `json:"productName"`
}

type ImageCatalog struct {
	Products []models.ProductSummary `json:"products"`
	Images   []ImageView             `json:"images"`
}

type UploadInput struct {
	ProductID   string
	Title       string
	Description string
	IsMain      bool
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type ImageService interface {
	List(ctx context.Context) (*ImageCatalog, error)
	Upload(ctx context.Context, in UploadInput) (*ImageCatalog, error)
	Delete(ctx context.Context, imageID string, confirmed bool) (*ImageCatalog, error)
}

type imageService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ImageRepository
	storage     storage.Storage
	now         func() time.Time
}

func NewImageService(productRepo repository.ProductRepository, imageRepo repository.ImageRepository, storage storage.Storage) ImageService {
	return &imageService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		storage:     storage,
		now:         time.Now,
	}
}

func (s *imageService) List(ctx context.Context) (*ImageCatalog, error) {
	products, err := s.productRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ImageCatalog{
		Products: products,
		Images:   JoinImages(products, images),
	}, nil
}

// Upload stores the file, then records it. The two steps are not atomic: if
// the insert fails the object stays in storage and is only logged.
func (s *imageService) Upload(ctx context.Context, in UploadInput) (*ImageCatalog, error) {
	if in.File == nil || in.ProductID == "" {
		return nil, ErrMissingSelection
	}

	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, ErrNotAnImage
	}

	objectName := storage.ObjectKey(in.FileName, s.now())

	if err := s.storage.Upload(ctx, objectName, in.File, in.Size, in.ContentType); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID:   in.ProductID,
		ImageURL:    s.storage.PublicURL(objectName),
		Title:       in.Title,
		Description: in.Description,
		IsMain:      in.IsMain,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		zap.S().Warnw("image uploaded but not recorded, object is orphaned",
			"object", objectName, "product_id", in.ProductID, "error", err)
		return nil, err
	}

	return s.refresh(ctx)
}

// Delete removes the row first. Storage cleanup only happens for objects this
// application uploaded, and its failure is logged, never returned.
func (s *imageService) Delete(ctx context.Context, imageID string, confirmed bool) (*ImageCatalog, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return nil, err
	}

	if objectName, ok := storage.ObjectFromURL(image.ImageURL); ok {
		if err := s.storage.Remove(ctx, objectName); err != nil {
			zap.S().Warnw("image row deleted but object removal failed",
				"object", objectName, "image_id", imageID, "error", err)
		}
	}

	return s.refresh(ctx)
}

func (s *imageService) refresh(ctx context.Context) (*ImageCatalog, error) {
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("saved, but reloading images failed: %w", err)
	}
	return catalog, nil
}

// JoinImages attaches product names to images, falling back to
// UnknownProductName for images whose product is gone.
func JoinImages(products []models.ProductSummary, images []models.ProductImage) []ImageView {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		name, ok := names[img.ProductID]
		if !ok {
			name = UnknownProductName
		}
		views = append(views, ImageView{ProductImage: img, ProductName: name})
	}
	return views
}
