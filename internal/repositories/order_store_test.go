package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/smarttools-ng/storefront/internal/models"
	repository "github.com/smarttools-ng/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(id string) *models.Order {
	return &models.Order{
		ID:          id,
		OrderNumber: id,
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{
			{ID: "l1", ProductID: "p1", Name: "Claw Hammer", Price: 89_999, Quantity: 1, WeightGrams: 500},
		},
		Subtotal:      89_999,
		ShippingFee:   500_000,
		TotalAmount:   589_999,
		PaymentMethod: models.PaymentPayOnDelivery,
	}
}

func TestOrderStore_Append(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		order := sampleOrder("STH-1-AAAAA")
		data, err := json.Marshal(order)
		require.NoError(t, err)

		mock.ExpectLPush("orders:cust-1", data).SetVal(1)

		err = store.Append(context.Background(), "cust-1", order)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		order := sampleOrder("STH-1-AAAAA")
		data, err := json.Marshal(order)
		require.NoError(t, err)

		mock.ExpectLPush("orders:cust-1", data).SetErr(errors.New("connection refused"))

		err = store.Append(context.Background(), "cust-1", order)

		assert.Error(t, err)
	})
}

func TestOrderStore_List(t *testing.T) {
	t.Run("Success - Most Recent First", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		newer, err := json.Marshal(sampleOrder("STH-2-BBBBB"))
		require.NoError(t, err)
		older, err := json.Marshal(sampleOrder("STH-1-AAAAA"))
		require.NoError(t, err)

		mock.ExpectLRange("orders:cust-1", 0, -1).SetVal([]string{string(newer), string(older)})

		orders, err := store.List(context.Background(), "cust-1")

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "STH-2-BBBBB", orders[0].ID)
		assert.Equal(t, "STH-1-AAAAA", orders[1].ID)
	})

	t.Run("Success - No History", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		mock.ExpectLRange("orders:cust-1", 0, -1).SetVal([]string{})

		orders, err := store.List(context.Background(), "cust-1")

		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Failure - Corrupt Entry", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		mock.ExpectLRange("orders:cust-1", 0, -1).SetVal([]string{"{not json"})

		_, err := store.List(context.Background(), "cust-1")

		assert.Error(t, err)
	})
}

func TestOrderStore_Get(t *testing.T) {
	t.Run("Success - Found By ID", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		data, err := json.Marshal(sampleOrder("STH-1-AAAAA"))
		require.NoError(t, err)

		mock.ExpectLRange("orders:cust-1", 0, -1).SetVal([]string{string(data)})

		order, err := store.Get(context.Background(), "cust-1", "STH-1-AAAAA")

		require.NoError(t, err)
		assert.Equal(t, "STH-1-AAAAA", order.ID)
	})

	t.Run("Failure - Unknown Order", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewOrderStore(client)

		mock.ExpectLRange("orders:cust-1", 0, -1).SetVal([]string{})

		_, err := store.Get(context.Background(), "cust-1", "STH-9-ZZZZZ")

		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})
}
