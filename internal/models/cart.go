package models

import (
	"github.com/smarttools-ng/storefront/internal/money"
)

// CartLine is one product entry in the cart. Lines are keyed by product
// id: re-adding the same product increments the existing line instead of
// creating a duplicate.
type CartLine struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	AddedAt  int64   `json:"added_at"` // unix millis
}

// Cart is the aggregate the reducer operates on. Every field below
// Items and Discount is derived and recomputed after each transition;
// TotalAmount is never mutated independently.
type Cart struct {
	Items       []CartLine  `json:"items"`
	TotalItems  int         `json:"total_items"` // distinct products, not total units
	Subtotal    money.Money `json:"subtotal"`
	Discount    money.Money `json:"discount"`
	ShippingFee money.Money `json:"shipping_fee"`
	TotalAmount money.Money `json:"total_amount"`
}

// CartSnapshot is the persisted form of a cart. Only line data and the
// applied discount are stored; totals are recomputed on load so a stale
// or corrupted snapshot can never misstate them.
type CartSnapshot struct {
	Items    []CartLine  `json:"items"`
	Discount money.Money `json:"discount"`
}

type CartSummary struct {
	TotalItems            int         `json:"total_items"`
	Subtotal              money.Money `json:"subtotal"`
	Discount              money.Money `json:"discount"`
	ShippingFee           money.Money `json:"shipping_fee"`
	TotalAmount           money.Money `json:"total_amount"`
	Savings               money.Money `json:"savings"`
	TotalWeightGrams      int         `json:"total_weight_grams"`
	SubtotalFormatted     string      `json:"subtotal_formatted"`
	DiscountFormatted     string      `json:"discount_formatted"`
	ShippingFeeFormatted  string      `json:"shipping_fee_formatted"`
	TotalAmountFormatted  string      `json:"total_amount_formatted"`
	FreeShippingThreshold money.Money `json:"free_shipping_threshold"`
	FreeShippingProgress  float64     `json:"free_shipping_progress"`
	NeedsForFreeShipping  money.Money `json:"needs_for_free_shipping"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}
