package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/smarttools-ng/storefront/internal/models"
)

const orderKeyPrefix = "orders"

var ErrOrderNotFound = errors.New("order not found")

// OrderStore keeps each customer's order history, most recent first.
// History growth is unbounded by design.
type OrderStore interface {
	Append(ctx context.Context, customerID string, order *models.Order) error
	List(ctx context.Context, customerID string) ([]models.Order, error)
	Get(ctx context.Context, customerID, orderID string) (*models.Order, error)
}

type redisOrderStore struct {
	client *redis.Client
}

func NewOrderStore(client *redis.Client) OrderStore {
	return &redisOrderStore{client: client}
}

func orderKey(customerID string) string {
	return orderKeyPrefix + ":" + customerID
}

func (s *redisOrderStore) Append(ctx context.Context, customerID string, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order %s: %w", order.ID, err)
	}

	if err := s.client.LPush(ctx, orderKey(customerID), data).Err(); err != nil {
		return fmt.Errorf("failed to append order %s: %w", order.ID, err)
	}

	return nil
}

func (s *redisOrderStore) List(ctx context.Context, customerID string) ([]models.Order, error) {
	entries, err := s.client.LRange(ctx, orderKey(customerID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read order history for %s: %w", customerID, err)
	}

	orders := make([]models.Order, 0, len(entries))

	for _, entry := range entries {
		var order models.Order

		if err := json.Unmarshal([]byte(entry), &order); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order history entry: %w", err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}

func (s *redisOrderStore) Get(ctx context.Context, customerID, orderID string) (*models.Order, error) {
	orders, err := s.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == orderID || orders[i].OrderNumber == orderID {
			return &orders[i], nil
		}
	}

	return nil, ErrOrderNotFound
}
