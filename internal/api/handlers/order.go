package handlers

import (
	"net/http"

	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/models"
	service "github.com/smarttools-ng/storefront/internal/services"
	"github.com/smarttools-ng/storefront/internal/utils"
	"github.com/smarttools-ng/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		var form models.CheckoutForm
		if err := utils.DecodeJSONBody(r, &form); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))

			return
		}

		order, fieldErrors, err := h.orderService.PlaceOrder(r.Context(), id, &form)
		if err != nil {
			response.Error(w, err)

			return
		}

		if len(fieldErrors) > 0 {
			response.FieldErrors(w, fieldErrors)

			return
		}

		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := customerID(w, r)
		if !ok {
			return
		}

		orderID := r.PathValue("id")
		if orderID == "" {
			response.Error(w, appErrors.BadRequestError("Order ID is required"))

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id, orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
