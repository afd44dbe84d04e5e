package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/service"
	"github.com/pribylovaa/go-catalog-service/internal/transport/http/httperr"
)

// productRequest — тело POST/PUT. Price и Stock — указатели, чтобы отличать
// отсутствующее поле от нулевого значения.
type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int32   `json:"stock"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int32   `json:"stock"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

// ListProducts — GET /products.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetProductByID — GET /products/{id}.
func (h *Handlers) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	product, err := h.Service.ProductByID(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// CreateProduct — POST /products (только с токеном).
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	if in.Price == nil || in.Stock == nil {
		httperr.WriteError(w, r, service.ErrProductFields)
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Stock:       *in.Stock,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct — PUT /products/{id} (только с токеном).
// Обновление полное: все четыре поля перезаписываются.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	var in productRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	if in.Price == nil || in.Stock == nil {
		httperr.WriteError(w, r, service.ErrProductFields)
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Stock:       *in.Stock,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProduct — DELETE /products/{id} (только с токеном).
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "product deleted"})
}

// pathID извлекает числовой {id} из пути.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
