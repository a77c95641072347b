package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/models"
	"github.com/smarttools-ng/storefront/internal/money"
	repository "github.com/smarttools-ng/storefront/internal/repositories"
	service "github.com/smarttools-ng/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	history   map[string][]models.Order
	appendErr error
	listErr   error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{history: make(map[string][]models.Order)}
}

func (f *fakeOrderStore) Append(_ context.Context, customerID string, order *models.Order) error {
	if f.appendErr != nil {
		return f.appendErr
	}

	// most recent first, like the real store
	f.history[customerID] = append([]models.Order{*order}, f.history[customerID]...)

	return nil
}

func (f *fakeOrderStore) List(_ context.Context, customerID string) ([]models.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.history[customerID], nil
}

func (f *fakeOrderStore) Get(_ context.Context, customerID, orderID string) (*models.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	for i := range f.history[customerID] {
		if f.history[customerID][i].ID == orderID {
			return &f.history[customerID][i], nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func checkoutForm() *models.CheckoutForm {
	return &models.CheckoutForm{
		FirstName: "Ngozi",
		LastName:  "Okafor",
		Email:     "ngozi@example.com",
		Phone:     "08031234567",
		ShippingAddress: models.Address{
			Street: "12 Allen Avenue",
			City:   "Ikeja",
			State:  "Lagos",
			LGA:    "Ikeja",
		},
		PaymentMethod: models.PaymentPayOnDelivery,
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Persists Order And Clears Cart", func(t *testing.T) {
		orders := newFakeOrderStore()
		carts := newCartService(newFakeCartStore(), newFakeCatalog(hammer()))
		svc := service.NewOrderService(orders, carts)

		_, err := carts.AddItem(ctx, "cust-1", &models.AddItemRequest{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		order, fieldErrors, err := svc.PlaceOrder(ctx, "cust-1", checkoutForm())

		require.NoError(t, err)
		assert.Empty(t, fieldErrors)
		require.NotNil(t, order)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, money.Money(89_999), order.Subtotal)
		assert.Len(t, orders.history["cust-1"], 1)
		assert.Empty(t, carts.GetCart(ctx, "cust-1").Items)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		svc := service.NewOrderService(newFakeOrderStore(), newCartService(newFakeCartStore(), newFakeCatalog()))

		_, _, err := svc.PlaceOrder(ctx, "cust-1", checkoutForm())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Validation Failure - Field Map, No Error", func(t *testing.T) {
		orders := newFakeOrderStore()
		carts := newCartService(newFakeCartStore(), newFakeCatalog(hammer()))
		svc := service.NewOrderService(orders, carts)

		_, err := carts.AddItem(ctx, "cust-1", &models.AddItemRequest{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		form := checkoutForm()
		form.Email = "not-an-email"

		order, fieldErrors, err := svc.PlaceOrder(ctx, "cust-1", form)

		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Equal(t, "Invalid email format", fieldErrors["email"])
		assert.Empty(t, orders.history["cust-1"], "nothing is persisted on a validation failure")
		assert.Len(t, carts.GetCart(ctx, "cust-1").Items, 1, "the cart survives a validation failure")
	})

	t.Run("Failure - Order Persistence Error Keeps The Cart", func(t *testing.T) {
		orders := newFakeOrderStore()
		orders.appendErr = errors.New("connection refused")
		carts := newCartService(newFakeCartStore(), newFakeCatalog(hammer()))
		svc := service.NewOrderService(orders, carts)

		_, err := carts.AddItem(ctx, "cust-1", &models.AddItemRequest{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		_, _, err = svc.PlaceOrder(ctx, "cust-1", checkoutForm())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorageError, appErr.Code)
		assert.Len(t, carts.GetCart(ctx, "cust-1").Items, 1)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orders := newFakeOrderStore()
		orders.history["cust-1"] = []models.Order{{ID: "STH-2-BBBBB"}, {ID: "STH-1-AAAAA"}}
		svc := service.NewOrderService(orders, newCartService(newFakeCartStore(), newFakeCatalog()))

		listed, err := svc.ListOrders(ctx, "cust-1")

		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "STH-2-BBBBB", listed[0].ID)
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		orders := newFakeOrderStore()
		orders.listErr = errors.New("connection refused")
		svc := service.NewOrderService(orders, newCartService(newFakeCartStore(), newFakeCatalog()))

		_, err := svc.ListOrders(ctx, "cust-1")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorageError, appErr.Code)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orders := newFakeOrderStore()
		orders.history["cust-1"] = []models.Order{{ID: "STH-1-AAAAA"}}
		svc := service.NewOrderService(orders, newCartService(newFakeCartStore(), newFakeCatalog()))

		order, err := svc.GetOrder(ctx, "cust-1", "STH-1-AAAAA")

		require.NoError(t, err)
		assert.Equal(t, "STH-1-AAAAA", order.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		svc := service.NewOrderService(newFakeOrderStore(), newCartService(newFakeCartStore(), newFakeCatalog()))

		_, err := svc.GetOrder(ctx, "cust-1", "STH-9-ZZZZZ")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
