package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Phaneesh28/project-backend/internal/domain"
	"github.com/Phaneesh28/project-backend/internal/http/response"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list products", "error", err)
		response.InternalError(w, "Internal Server Error")
		return
	}

	response.WriteJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		response.NotFound(w, "Product Not Found")
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get product", "error", err, "product_id", id)
		response.InternalError(w, "Internal Server Error")
		return
	}

	response.WriteJSON(w, http.StatusOK, product)
}
