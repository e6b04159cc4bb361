package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zurnaWorkshop/internal/models"
)

func newTestImageService() (*imageService, *MockProductRepository, *MockImageRepository, *MockStorage) {
	products := new(MockProductRepository)
	images := new(MockImageRepository)
	store := new(MockStorage)
	svc := NewImageService(products, images, store).(*imageService)
	svc.now = func() time.Time { return time.UnixMilli(1718000000123) }
	return svc, products, images, store
}

func TestJoinImages(t *testing.T) {
	products := []models.ProductSummary{{ID: "p-1", Name: "Zurna"}}
	images := []models.ProductImage{
		{ID: "i-1", ProductID: "p-1"},
		{ID: "i-2", ProductID: "p-deleted"},
	}

	views := JoinImages(products, images)

	require.Len(t, views, 2)
	assert.Equal(t, "Zurna", views[0].ProductName)
	assert.Equal(t, UnknownProductName, views[1].ProductName)
	assert.NotNil(t, JoinImages(nil, nil))
}

func TestImageService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("upload then url then insert", func(t *testing.T) {
		svc, products, images, store := newTestImageService()
		file := bytes.NewReader([]byte("jpeg-bytes"))

		store.On("Upload", ctx, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "products/1718000000123-") && strings.HasSuffix(name, ".jpg")
		}), file, int64(10), "image/jpeg").Return(nil)
		store.On("PublicURL", mock.AnythingOfType("string")).Return("http://minio/products/products/1718000000123-abc.jpg")
		images.On("Create", ctx, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.ProductID == "p-1" && img.IsMain && img.ImageURL == "http://minio/products/products/1718000000123-abc.jpg"
		})).Return(nil)
		products.On("ListSummaries", ctx).Return([]models.ProductSummary{{ID: "p-1", Name: "Zurna"}}, nil)
		images.On("List", ctx).Return([]models.ProductImage{{ID: "i-1", ProductID: "p-1"}}, nil)

		catalog, err := svc.Upload(ctx, UploadInput{
			ProductID:   "p-1",
			IsMain:      true,
			FileName:    "zurna.JPG",
			ContentType: "image/jpeg",
			Size:        10,
			File:        file,
		})

		require.NoError(t, err)
		assert.Len(t, catalog.Images, 1)
		store.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("non image rejected before any call", func(t *testing.T) {
		svc, _, images, store := newTestImageService()

		_, err := svc.Upload(ctx, UploadInput{ProductID: "p-1", ContentType: "application/pdf", File: strings.NewReader("%PDF")})

		assert.ErrorIs(t, err, ErrNotAnImage)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing product or file", func(t *testing.T) {
		svc, _, _, store := newTestImageService()

		_, err := svc.Upload(ctx, UploadInput{ContentType: "image/png", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrMissingSelection)

		_, err = svc.Upload(ctx, UploadInput{ProductID: "p-1", ContentType: "image/png"})
		assert.ErrorIs(t, err, ErrMissingSelection)

		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insert failure leaves the object in place", func(t *testing.T) {
		svc, _, images, store := newTestImageService()

		store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		store.On("PublicURL", mock.Anything).Return("http://minio/products/products/x.png")
		images.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := svc.Upload(ctx, UploadInput{ProductID: "p-1", ContentType: "image/png", File: strings.NewReader("x"), FileName: "x.png"})

		assert.ErrorContains(t, err, "insert failed")
		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestImageService_Delete(t *testing.T) {
	ctx := context.Background()

	expectRefresh := func(products *MockProductRepository, images *MockImageRepository) {
		products.On("ListSummaries", ctx).Return([]models.ProductSummary{}, nil)
		images.On("List", ctx).Return([]models.ProductImage{}, nil)
	}

	t.Run("uploaded object removed after the row", func(t *testing.T) {
		svc, products, images, store := newTestImageService()
		images.On("GetByID", ctx, "i-1").Return(&models.ProductImage{ID: "i-1", ImageURL: "http://minio/products/products/1-a.jpg"}, nil)
		images.On("Delete", ctx, "i-1").Return(nil)
		store.On("Remove", ctx, "products/1-a.jpg").Return(nil)
		expectRefresh(products, images)

		_, err := svc.Delete(ctx, "i-1", true)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("bundled asset url is row only", func(t *testing.T) {
		svc, products, images, store := newTestImageService()
		images.On("GetByID", ctx, "i-2").Return(&models.ProductImage{ID: "i-2", ImageURL: "/src/assets/zurna-1.jpg"}, nil)
		images.On("Delete", ctx, "i-2").Return(nil)
		expectRefresh(products, images)

		_, err := svc.Delete(ctx, "i-2", true)

		require.NoError(t, err)
		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("removal failure is not an error", func(t *testing.T) {
		svc, products, images, store := newTestImageService()
		images.On("GetByID", ctx, "i-1").Return(&models.ProductImage{ID: "i-1", ImageURL: "http://minio/products/products/1-a.jpg"}, nil)
		images.On("Delete", ctx, "i-1").Return(nil)
		store.On("Remove", ctx, "products/1-a.jpg").Return(errors.New("access denied"))
		expectRefresh(products, images)

		catalog, err := svc.Delete(ctx, "i-1", true)

		require.NoError(t, err)
		assert.NotNil(t, catalog)
	})

	t.Run("row delete failure skips storage", func(t *testing.T) {
		svc, _, images, store := newTestImageService()
		images.On("GetByID", ctx, "i-1").Return(&models.ProductImage{ID: "i-1", ImageURL: "http://minio/products/products/1-a.jpg"}, nil)
		images.On("Delete", ctx, "i-1").Return(errors.New("row locked"))

		_, err := svc.Delete(ctx, "i-1", true)

		assert.Error(t, err)
		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("unconfirmed", func(t *testing.T) {
		svc, _, images, _ := newTestImageService()

		_, err := svc.Delete(ctx, "i-1", false)

		assert.ErrorIs(t, err, ErrConfirmationRequired)
		images.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
