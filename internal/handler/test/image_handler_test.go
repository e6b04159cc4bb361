package test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func multipartUpload(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageHandler(t *testing.T) {
	t.Run("sniffs undeclared content type", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		deps.image.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.ProductID == "p1" &&
				in.ContentType == "image/png" &&
				in.FileName == "zurna.png" &&
				in.Title == "Ön görünüm" &&
				in.IsMain
		})).Return(&service.ImageCatalog{}, nil)

		req := multipartUpload(t, map[string]string{
			"productId": "p1",
			"title":     "Ön görünüm",
			"isMain":    "true",
		}, "zurna.png", pngHeader)
		rr := httptest.NewRecorder()

		handler.UploadImage(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusCreated)
		notice := response["notice"].(map[string]interface{})
		assert.Equal(t, "Resim başarıyla yüklendi.", notice["description"])
		deps.image.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		req := multipartUpload(t, map[string]string{}, "zurna.png", pngHeader)
		rr := httptest.NewRecorder()

		handler.UploadImage(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest, "Lütfen dosya ve ürün seçin.")
		deps.image.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		req := multipartUpload(t, map[string]string{"productId": "p1"}, "", nil)
		rr := httptest.NewRecorder()

		handler.UploadImage(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest, "Lütfen dosya ve ürün seçin.")
		deps.image.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("not an image", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		deps.image.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.ContentType != "image/png"
		})).Return(nil, service.ErrNotAnImage)

		req := multipartUpload(t, map[string]string{"productId": "p1"}, "notes.txt", []byte("just some plain text"))
		rr := httptest.NewRecorder()

		handler.UploadImage(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest, "Lütfen geçerli bir resim dosyası seçin.")
	})

	t.Run("storage failure", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		deps.image.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket not found"))

		req := multipartUpload(t, map[string]string{"productId": "p1"}, "zurna.png", pngHeader)
		rr := httptest.NewRecorder()

		handler.UploadImage(rr, req)

		assertJSONError(t, rr, http.StatusInternalServerError, "Resim yüklenirken hata oluştu: bucket not found")
	})
}

func TestListImagesHandler(t *testing.T) {
	handler, deps := createTestHandler(t)

	deps.image.On("List", mock.Anything).Return(&service.ImageCatalog{
		Products: []models.ProductSummary{{ID: "p1", Name: "Zurna"}},
		Images: []service.ImageView{{
			ProductImage: models.ProductImage{ID: "i1", ProductID: "gone"},
			ProductName:  service.UnknownProductName,
		}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/images", nil)
	rr := httptest.NewRecorder()

	handler.ListImages(rr, req)

	response := assertJSONSuccess(t, rr, http.StatusOK)
	images := response["images"].([]interface{})
	require.Len(t, images, 1)
	assert.Equal(t, "Bilinmeyen Ürün", images[0].(map[string]interface{})["productName"])
}

func TestDeleteImageHandler(t *testing.T) {
	t.Run("asks for confirmation", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		deps.image.On("Delete", mock.Anything, "i1", false).Return(nil, service.ErrConfirmationRequired)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/images/i1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "i1"})
		rr := httptest.NewRecorder()

		handler.DeleteImage(rr, req)

		assertJSONError(t, rr, http.StatusPreconditionRequired, "Bu resmi silmek istediğinizden emin misiniz?")
	})

	t.Run("confirmed", func(t *testing.T) {
		handler, deps := createTestHandler(t)

		deps.image.On("Delete", mock.Anything, "i1", true).Return(&service.ImageCatalog{}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/images/i1?confirm=true", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "i1"})
		rr := httptest.NewRecorder()

		handler.DeleteImage(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusOK)
		notice := response["notice"].(map[string]interface{})
		assert.Equal(t, "Resim başarıyla silindi.", notice["description"])
	})
}
