// Package cart implements the shopping-cart state machine: a pure
// reducer over an immutable Cart value, plus an Engine wrapping it with
// a current snapshot and change notification.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/smarttools-ng/storefront/internal/models"
	"github.com/smarttools-ng/storefront/internal/money"
	"github.com/smarttools-ng/storefront/internal/shipping"
)

// Intent is the closed set of cart transitions.
type Intent interface {
	intent()
}

// Add puts qty units of a product in the cart. If a line for the
// product already exists its quantity is incremented; otherwise a new
// line is created. A quantity below 1 is treated as 1.
type Add struct {
	Product  models.Product
	Quantity int
}

// Remove deletes the line for a product id. Removing an absent product
// is a no-op, not an error.
type Remove struct {
	ProductID string
}

// SetQuantity replaces a line's quantity outright. A quantity of zero
// or less removes the line; a non-positive quantity is never stored.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// Clear empties the cart and resets the discount.
type Clear struct{}

// ApplyDiscount sets the discount to a precomputed amount. The promo
// table lookup happens in the caller, keeping the reducer free of it.
type ApplyDiscount struct {
	Amount money.Money
}

// Load replaces the cart with a persisted snapshot. Totals are
// recomputed from the snapshot's line data, never trusted verbatim.
type Load struct {
	Snapshot models.CartSnapshot
}

func (Add) intent()           {}
func (Remove) intent()        {}
func (SetQuantity) intent()   {}
func (Clear) intent()         {}
func (ApplyDiscount) intent() {}
func (Load) intent()          {}

// Reducer applies intents to cart values. The clock and id source are
// injectable so transitions stay deterministic under test.
type Reducer struct {
	shipping *shipping.Calculator
	now      func() time.Time
	newID    func() string
}

func NewReducer(calc *shipping.Calculator) *Reducer {
	return &Reducer{
		shipping: calc,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Apply is the transition function (Cart, Intent) -> Cart. The input
// cart is never mutated; derived totals are recomputed on every
// transition, with the discount re-clamped to the subtotal each time.
func (r *Reducer) Apply(c models.Cart, in Intent) models.Cart {
	switch in := in.(type) {
	case Add:
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}

		items := cloneLines(c.Items)

		if i := lineIndex(items, in.Product.ID); i >= 0 {
			items[i].Quantity += qty
		} else {
			items = append(items, models.CartLine{
				ID:       r.newID(),
				Product:  in.Product,
				Quantity: qty,
				AddedAt:  r.now().UnixMilli(),
			})
		}

		return r.recompute(items, c.Discount)

	case Remove:
		items := make([]models.CartLine, 0, len(c.Items))
		for _, line := range c.Items {
			if line.Product.ID != in.ProductID {
				items = append(items, line)
			}
		}

		return r.recompute(items, c.Discount)

	case SetQuantity:
		if in.Quantity <= 0 {
			return r.Apply(c, Remove{ProductID: in.ProductID})
		}

		items := cloneLines(c.Items)
		if i := lineIndex(items, in.ProductID); i >= 0 {
			items[i].Quantity = in.Quantity
		}

		return r.recompute(items, c.Discount)

	case Clear:
		return r.recompute(nil, 0)

	case ApplyDiscount:
		return r.recompute(cloneLines(c.Items), in.Amount)

	case Load:
		return r.recompute(cloneLines(in.Snapshot.Items), in.Snapshot.Discount)
	}

	return c
}

// Empty is the initial cart value with derived fields populated.
func (r *Reducer) Empty() models.Cart {
	return r.recompute(nil, 0)
}

func (r *Reducer) recompute(items []models.CartLine, discount money.Money) models.Cart {
	var subtotal money.Money
	for _, line := range items {
		subtotal += line.Product.Price * money.Money(line.Quantity)
	}

	// discount may never push the total negative, and removing lines
	// after a promo was applied must shrink it accordingly
	if discount < 0 {
		discount = 0
	}

	if discount > subtotal {
		discount = subtotal
	}

	fee := r.shipping.Fee(subtotal)

	return models.Cart{
		Items:       items,
		TotalItems:  len(items),
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: fee,
		TotalAmount: subtotal - discount + fee,
	}
}

func lineIndex(items []models.CartLine, productID string) int {
	for i, line := range items {
		if line.Product.ID == productID {
			return i
		}
	}

	return -1
}

func cloneLines(items []models.CartLine) []models.CartLine {
	if items == nil {
		return nil
	}

	cloned := make([]models.CartLine, len(items))
	copy(cloned, items)

	return cloned
}
