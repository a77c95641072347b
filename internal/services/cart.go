package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/smarttools-ng/storefront/internal/cart"
	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/metrics"
	"github.com/smarttools-ng/storefront/internal/models"
	"github.com/smarttools-ng/storefront/internal/money"
	"github.com/smarttools-ng/storefront/internal/promo"
	repository "github.com/smarttools-ng/storefront/internal/repositories"
	"github.com/smarttools-ng/storefront/internal/shipping"
)

// CartService owns one cart engine per customer session. Every mutation
// goes through the pure reducer; persistence runs afterwards and fails
// soft, so the in-memory cart stays authoritative when storage is down.
type CartService struct {
	store    repository.CartStore
	catalog  repository.ProductRepository
	reducer  *cart.Reducer
	promos   *promo.Resolver
	shipping *shipping.Calculator

	mu       sync.Mutex
	sessions map[string]*cart.Engine
}

func NewCartService(store repository.CartStore, catalog repository.ProductRepository, calc *shipping.Calculator, promos *promo.Resolver) *CartService {
	return &CartService{
		store:    store,
		catalog:  catalog,
		reducer:  cart.NewReducer(calc),
		promos:   promos,
		shipping: calc,
		sessions: make(map[string]*cart.Engine),
	}
}

// engine returns the session engine for a customer, restoring any
// persisted snapshot the first time the customer shows up.
func (s *CartService) engine(ctx context.Context, customerID string) *cart.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.sessions[customerID]; ok {
		return engine
	}

	engine := cart.NewEngine(s.reducer)

	snapshot, err := s.store.Load(ctx, customerID)
	if err != nil {
		// storage being unreachable must not block the cart
		slog.Error("Failed to restore cart snapshot, operating in memory",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))
	} else if snapshot != nil {
		engine.Dispatch(cart.Load{Snapshot: *snapshot})
	}

	engine.Subscribe(func(models.Cart) {
		metrics.CartTransitionsTotal.Inc()
	})

	s.sessions[customerID] = engine

	return engine
}

func (s *CartService) GetCart(ctx context.Context, customerID string) models.Cart {
	return s.engine(ctx, customerID).Snapshot()
}

func (s *CartService) AddItem(ctx context.Context, customerID string, req *models.AddItemRequest) (models.Cart, error) {
	product, err := s.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Cart{}, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return models.Cart{}, appErrors.DatabaseError("Failed to look up product").WithError(err)
	}

	if !product.InStock {
		return models.Cart{}, appErrors.BadRequestError("Product is out of stock")
	}

	snapshot := s.engine(ctx, customerID).Dispatch(cart.Add{Product: *product, Quantity: req.Quantity})
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	s.persist(ctx, customerID, snapshot)

	return snapshot, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, customerID string, req *models.UpdateQuantityRequest) models.Cart {
	// a quantity of zero or less means remove, not an error
	snapshot := s.engine(ctx, customerID).Dispatch(cart.SetQuantity{ProductID: req.ProductID, Quantity: req.Quantity})
	metrics.CartOperationsTotal.WithLabelValues("update_quantity").Inc()
	s.persist(ctx, customerID, snapshot)

	return snapshot
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID string) models.Cart {
	snapshot := s.engine(ctx, customerID).Dispatch(cart.Remove{ProductID: productID})
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	s.persist(ctx, customerID, snapshot)

	return snapshot
}

// ClearCart empties the cart and evicts the persisted snapshot.
func (s *CartService) ClearCart(ctx context.Context, customerID string) models.Cart {
	snapshot := s.engine(ctx, customerID).Dispatch(cart.Clear{})
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()

	if err := s.store.Delete(ctx, customerID); err != nil {
		slog.Error("Failed to evict persisted cart snapshot",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))
	}

	return snapshot
}

// ApplyPromo validates the code and, when valid, applies the computed
// discount. An invalid code leaves the cart untouched and reports a
// negative result, not an error.
func (s *CartService) ApplyPromo(ctx context.Context, customerID, code string) (models.Cart, promo.Result) {
	engine := s.engine(ctx, customerID)

	result := s.promos.Validate(code)
	if !result.Valid {
		return engine.Snapshot(), result
	}

	amount := s.promos.Apply(engine.Snapshot().Subtotal, code)

	snapshot := engine.Dispatch(cart.ApplyDiscount{Amount: amount})
	metrics.CartOperationsTotal.WithLabelValues("apply_promo").Inc()
	s.persist(ctx, customerID, snapshot)

	return snapshot, result
}

func (s *CartService) IsInCart(ctx context.Context, customerID, productID string) bool {
	return s.engine(ctx, customerID).IsInCart(productID)
}

func (s *CartService) GetItemQuantity(ctx context.Context, customerID, productID string) int {
	return s.engine(ctx, customerID).QuantityOf(productID)
}

// Summary derives the UI-facing cart totals, including free-shipping
// progress and formatted amounts.
func (s *CartService) Summary(ctx context.Context, customerID string) models.CartSummary {
	snapshot := s.engine(ctx, customerID).Snapshot()

	var savings money.Money
	var totalWeight int

	for _, line := range snapshot.Items {
		savings += money.Savings(line.Product.OriginalPrice, line.Product.Price, line.Quantity)
		totalWeight += shipping.EstimateWeight(line.Product.Name) * line.Quantity
	}

	return models.CartSummary{
		TotalItems:            snapshot.TotalItems,
		Subtotal:              snapshot.Subtotal,
		Discount:              snapshot.Discount,
		ShippingFee:           snapshot.ShippingFee,
		TotalAmount:           snapshot.TotalAmount,
		Savings:               savings,
		TotalWeightGrams:      totalWeight,
		SubtotalFormatted:     formatOrEmpty(snapshot.Subtotal),
		DiscountFormatted:     formatOrEmpty(snapshot.Discount),
		ShippingFeeFormatted:  formatOrEmpty(snapshot.ShippingFee),
		TotalAmountFormatted:  formatOrEmpty(snapshot.TotalAmount),
		FreeShippingThreshold: s.shipping.Threshold,
		FreeShippingProgress:  s.shipping.Progress(snapshot.Subtotal),
		NeedsForFreeShipping:  s.shipping.Remaining(snapshot.Subtotal),
	}
}

// persist writes the snapshot after a transition. Failures are logged
// and swallowed: the engine state is the source of truth.
func (s *CartService) persist(ctx context.Context, customerID string, snapshot models.Cart) {
	err := s.store.Save(ctx, customerID, models.CartSnapshot{
		Items:    snapshot.Items,
		Discount: snapshot.Discount,
	})
	if err != nil {
		slog.Error("Failed to persist cart snapshot, operating in memory",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))
	}
}

func formatOrEmpty(amount money.Money) string {
	formatted, err := money.Format(amount)
	if err != nil {
		return ""
	}

	return formatted
}
