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

func TestCartStore_Load(t *testing.T) {
	t.Run("Success - Existing Snapshot", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		snapshot := models.CartSnapshot{
			Items: []models.CartLine{
				{ID: "l1", Product: models.Product{ID: "p1", Name: "Claw Hammer", Price: 89_999}, Quantity: 2},
			},
			Discount: 100_000,
		}
		data, err := json.Marshal(snapshot)
		require.NoError(t, err)

		mock.ExpectGet("cart:cust-1").SetVal(string(data))

		loaded, err := store.Load(context.Background(), "cust-1")

		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, snapshot, *loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Missing Key Means Empty Cart", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		mock.ExpectGet("cart:cust-1").RedisNil()

		loaded, err := store.Load(context.Background(), "cust-1")

		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("Success - Malformed Snapshot Is Discarded", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		mock.ExpectGet("cart:cust-1").SetVal("{not json")

		loaded, err := store.Load(context.Background(), "cust-1")

		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		mock.ExpectGet("cart:cust-1").SetErr(errors.New("connection refused"))

		_, err := store.Load(context.Background(), "cust-1")

		assert.Error(t, err)
	})
}

func TestCartStore_Save(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		snapshot := models.CartSnapshot{
			Items: []models.CartLine{
				{ID: "l1", Product: models.Product{ID: "p1", Price: 100}, Quantity: 1},
			},
		}
		data, err := json.Marshal(snapshot)
		require.NoError(t, err)

		mock.ExpectSet("cart:cust-1", data, 0).SetVal("OK")

		err = store.Save(context.Background(), "cust-1", snapshot)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewCartStore(client)

		snapshot := models.CartSnapshot{}
		data, err := json.Marshal(snapshot)
		require.NoError(t, err)

		mock.ExpectSet("cart:cust-1", data, 0).SetErr(errors.New("connection refused"))

		err = store.Save(context.Background(), "cust-1", snapshot)

		assert.Error(t, err)
	})
}

func TestCartStore_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := repository.NewCartStore(client)

	mock.ExpectDel("cart:cust-1").SetVal(1)

	err := store.Delete(context.Background(), "cust-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
