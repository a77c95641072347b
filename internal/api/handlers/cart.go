package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/models"
	service "github.com/smarttools-ng/storefront/internal/services"
	"github.com/smarttools-ng/storefront/internal/utils"
	"github.com/smarttools-ng/storefront/internal/utils/response"
)

// CustomerIDHeader identifies the browsing session. There is no
// authentication; the storefront trusts the client-supplied id.
const CustomerIDHeader = "X-Customer-ID"

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(CustomerIDHeader)
	if id == "" {
		response.Error(w, appErrors.BadRequestError("Customer ID header is required"))

		return "", false
	}

	return id, true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.GetCart(r.Context(), id))
	}
}

func (h *CartHandler) GetSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Summary(r.Context(), id))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := h.validator.Struct(req); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)

				return
			}

			response.Error(w, appErrors.ValidationError("Invalid request"))

			return
		}

		snapshot, err := h.cartService.AddItem(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := h.validator.Struct(req); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)

				return
			}

			response.Error(w, appErrors.ValidationError("Invalid request"))

			return
		}

		response.Success(w, http.StatusOK, h.cartService.UpdateQuantity(r.Context(), id, &req))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))

			return
		}

		response.Success(w, http.StatusOK, h.cartService.RemoveItem(r.Context(), id, productID))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.ClearCart(r.Context(), id))
	}
}

func (h *CartHandler) ApplyPromo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		var req models.ApplyPromoRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		if err := h.validator.Struct(req); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)

				return
			}

			response.Error(w, appErrors.ValidationError("Invalid request"))

			return
		}

		snapshot, result := h.cartService.ApplyPromo(r.Context(), id, req.Code)

		// invalid codes are a normal negative result, not an error
		response.Success(w, http.StatusOK, map[string]any{
			"cart":  snapshot,
			"promo": result,
		})
	}
}
