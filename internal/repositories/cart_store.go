package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/smarttools-ng/storefront/internal/models"
)

const cartKeyPrefix = "cart"

// CartStore persists cart snapshots to local durable storage. The store
// is fallible and non-transactional: callers treat in-memory state as
// the source of truth and degrade gracefully when a write fails.
type CartStore interface {
	Load(ctx context.Context, customerID string) (*models.CartSnapshot, error)
	Save(ctx context.Context, customerID string, snapshot models.CartSnapshot) error
	Delete(ctx context.Context, customerID string) error
}

type redisCartStore struct {
	client *redis.Client
}

func NewCartStore(client *redis.Client) CartStore {
	return &redisCartStore{client: client}
}

func cartKey(customerID string) string {
	return cartKeyPrefix + ":" + customerID
}

// Load returns nil without an error when no snapshot exists. A snapshot
// that fails to decode is treated the same way: fail soft to an empty
// cart rather than crash the caller over corrupted storage.
func (s *redisCartStore) Load(ctx context.Context, customerID string) (*models.CartSnapshot, error) {
	data, err := s.client.Get(ctx, cartKey(customerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read cart snapshot for %s: %w", customerID, err)
	}

	var snapshot models.CartSnapshot

	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Warn("Discarding malformed cart snapshot",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))

		return nil, nil
	}

	return &snapshot, nil
}

func (s *redisCartStore) Save(ctx context.Context, customerID string, snapshot models.CartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot for %s: %w", customerID, err)
	}

	if err := s.client.Set(ctx, cartKey(customerID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cart snapshot for %s: %w", customerID, err)
	}

	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot for %s: %w", customerID, err)
	}

	return nil
}
