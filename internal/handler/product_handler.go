package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
)

type ProductsResponse struct {
	Products []models.Product `json:"products"`
	Notice   *models.Notice   `json:"notice,omitempty"`
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.Product.List(r.Context())
	if err != nil {
		writeNotice(w, failureNotice("Ürünler yüklenirken hata oluştu: ", err), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, ProductsResponse{Products: products}, http.StatusOK)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	products, err := h.Product.Create(r.Context(), req)
	if err != nil {
		writeNotice(w, failureNotice("Ürün eklenirken hata oluştu: ", err), statusFor(err))
		return
	}

	writeSuccess(w, ProductsResponse{
		Products: products,
		Notice:   &models.Notice{Title: "Başarılı", Description: "Ürün başarıyla eklendi."},
	}, http.StatusCreated)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID := mux.Vars(r)["id"]
	if productID == "" {
		WriteError(w, "Product id is required", http.StatusBadRequest)
		return
	}

	var req service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	products, err := h.Product.Update(r.Context(), productID, req)
	if err != nil {
		writeNotice(w, failureNotice("Ürün güncellenirken hata oluştu: ", err), statusFor(err))
		return
	}

	writeSuccess(w, ProductsResponse{
		Products: products,
		Notice:   &models.Notice{Title: "Başarılı", Description: "Ürün başarıyla güncellendi."},
	}, http.StatusOK)
}

// DeleteProduct only deletes with ?confirm=true. Without it the prompt comes
// back with 428 and nothing is touched.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID := mux.Vars(r)["id"]
	if productID == "" {
		WriteError(w, "Product id is required", http.StatusBadRequest)
		return
	}

	products, err := h.Product.Delete(r.Context(), productID, confirmed(r))
	if errors.Is(err, service.ErrConfirmationRequired) {
		writeNotice(w, models.Notice{
			Title:       "Onay Gerekli",
			Description: "Bu ürünü silmek istediğinizden emin misiniz?",
		}, http.StatusPreconditionRequired)
		return
	}
	if err != nil {
		writeNotice(w, failureNotice("Ürün silinirken hata oluştu: ", err), statusFor(err))
		return
	}

	writeSuccess(w, ProductsResponse{
		Products: products,
		Notice:   &models.Notice{Title: "Başarılı", Description: "Ürün başarıyla silindi."},
	}, http.StatusOK)
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func failureNotice(prefix string, err error) models.Notice {
	return models.Notice{Title: "Hata", Description: prefix + err.Error(), Destructive: true}
}
