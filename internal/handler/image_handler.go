package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
	"zurnaWorkshop/internal/storage"
)

type ImagesResponse struct {
	*service.ImageCatalog
	Notice *models.Notice `json:"notice,omitempty"`
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog, err := h.Image.List(r.Context())
	if err != nil {
		writeNotice(w, failureNotice("Resimler yüklenirken hata oluştu: ", err), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, ImagesResponse{ImageCatalog: catalog}, http.StatusOK)
}

// UploadImage reads the multipart form fields image, productId, title,
// description and isMain.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File is too large or the form is malformed", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("productId")

	file, header, err := r.FormFile("image")
	if err != nil || productID == "" {
		writeNotice(w, models.Notice{
			Title:       "Hata",
			Description: "Lütfen dosya ve ürün seçin.",
			Destructive: true,
		}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType, err := storage.ContentType(header.Header.Get("Content-Type"), file)
	if err != nil {
		WriteError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	isMain, _ := strconv.ParseBool(r.FormValue("isMain"))

	catalog, err := h.Image.Upload(r.Context(), service.UploadInput{
		ProductID:   productID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		IsMain:      isMain,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAnImage):
			writeNotice(w, models.Notice{
				Title:       "Hata",
				Description: "Lütfen geçerli bir resim dosyası seçin.",
				Destructive: true,
			}, http.StatusBadRequest)
		case errors.Is(err, service.ErrMissingSelection):
			writeNotice(w, models.Notice{
				Title:       "Hata",
				Description: "Lütfen dosya ve ürün seçin.",
				Destructive: true,
			}, http.StatusBadRequest)
		default:
			writeNotice(w, failureNotice("Resim yüklenirken hata oluştu: ", err), statusFor(err))
		}
		return
	}

	writeSuccess(w, ImagesResponse{
		ImageCatalog: catalog,
		Notice:       &models.Notice{Title: "Başarılı", Description: "Resim başarıyla yüklendi."},
	}, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	imageID := mux.Vars(r)["id"]
	if imageID == "" {
		WriteError(w, "Image id is required", http.StatusBadRequest)
		return
	}

	catalog, err := h.Image.Delete(r.Context(), imageID, confirmed(r))
	if errors.Is(err, service.ErrConfirmationRequired) {
		writeNotice(w, models.Notice{
			Title:       "Onay Gerekli",
			Description: "Bu resmi silmek istediğinizden emin misiniz?",
		}, http.StatusPreconditionRequired)
		return
	}
	if err != nil {
		writeNotice(w, failureNotice("Resim silinirken hata oluştu: ", err), statusFor(err))
		return
	}

	writeSuccess(w, ImagesResponse{
		ImageCatalog: catalog,
		Notice:       &models.Notice{Title: "Başarılı", Description: "Resim başarıyla silindi."},
	}, http.StatusOK)
}
