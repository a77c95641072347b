package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	repository "github.com/smarttools-ng/storefront/internal/repositories"
	"github.com/smarttools-ng/storefront/internal/utils/response"
)

// ProductHandler exposes the read-only catalog the cart copies from.
type ProductHandler struct {
	catalog repository.ProductRepository
}

func NewProductHandler(catalog repository.ProductRepository) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))

			return
		}

		product, err := h.catalog.GetProductByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(w, appErrors.NotFoundError("Product not found"))

				return
			}

			response.Error(w, appErrors.DatabaseError("Failed to fetch product"))

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		if page < 1 {
			page = 1
		}

		if size < 1 || size > 50 {
			size = 20
		}

		products, total, err := h.catalog.ListProducts(r.Context(), page, size)
		if err != nil {
			response.Error(w, appErrors.DatabaseError("Failed to fetch products"))

			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    total,
			"page":     page,
			"size":     size,
		})
	}
}
