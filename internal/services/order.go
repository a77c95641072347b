package service

import (
	"context"
	"errors"

	"github.com/smarttools-ng/storefront/internal/checkout"
	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/metrics"
	"github.com/smarttools-ng/storefront/internal/models"
	repository "github.com/smarttools-ng/storefront/internal/repositories"
)

type OrderService struct {
	orders      repository.OrderStore
	carts       *CartService
	transformer *checkout.Transformer
}

func NewOrderService(orders repository.OrderStore, carts *CartService) *OrderService {
	return &OrderService{
		orders:      orders,
		carts:       carts,
		transformer: checkout.NewTransformer(),
	}
}

// PlaceOrder runs the checkout flow: precondition, validation,
// transformation, persistence, then cart clearing. Field validation
// failures come back as a map, not an error.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID string, form *models.CheckoutForm) (*models.Order, map[string]string, error) {
	snapshot := s.carts.GetCart(ctx, customerID)

	if len(snapshot.Items) == 0 {
		return nil, nil, appErrors.EmptyCartError("Cannot place an order with an empty cart")
	}

	if fieldErrors := s.transformer.Validate(form); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	order, err := s.transformer.CreateOrder(snapshot, form)
	if err != nil {
		return nil, nil, err
	}

	// order persistence is the one write that must not be swallowed
	if err := s.orders.Append(ctx, customerID, order); err != nil {
		return nil, nil, appErrors.StorageError("Failed to save order").WithError(err)
	}

	s.carts.ClearCart(ctx, customerID)
	metrics.OrdersPlacedTotal.Inc()

	return order, nil, nil
}

func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, customerID)
	if err != nil {
		return nil, appErrors.StorageError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, customerID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.StorageError("Failed to fetch order").WithError(err)
	}

	return order, nil
}
