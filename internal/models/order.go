package models

import (
	"time"

	"github.com/smarttools-ng/storefront/internal/money"
)

type OrderStatus string

type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentPayOnDelivery PaymentMethod = "pay-on-delivery"
)

// Terminal reports whether no further status transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	LGA     string `json:"lga" validate:"required"`
	ZipCode string `json:"zip_code,omitempty"`
}

// BillingAddress is optional on the form; when SameAsShipping is set the
// shipping address is copied over and the rest of the fields are ignored.
type BillingAddress struct {
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	LGA            string `json:"lga"`
	ZipCode        string `json:"zip_code,omitempty"`
	SameAsShipping bool   `json:"same_as_shipping"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrderItem is a cart line frozen at order time. Price is copied by
// value so later catalog changes never alter a placed order.
type OrderItem struct {
	ID            string      `json:"id"`
	ProductID     string      `json:"product_id"`
	Name          string      `json:"name"`
	Price         money.Money `json:"price"`
	OriginalPrice money.Money `json:"original_price,omitempty"`
	Quantity      int         `json:"quantity"`
	Image         string      `json:"image,omitempty"`
	Brand         string      `json:"brand,omitempty"`
	WeightGrams   int         `json:"weight_grams"`
}

// Order is an immutable snapshot produced once at checkout. Status
// transitions belong to order management, not the cart engine.
type Order struct {
	ID                string        `json:"id"`
	OrderNumber       string        `json:"order_number"`
	Status            OrderStatus   `json:"status"`
	Customer          Customer      `json:"customer"`
	Items             []OrderItem   `json:"items"`
	ShippingAddress   Address       `json:"shipping_address"`
	BillingAddress    *Address      `json:"billing_address,omitempty"`
	Subtotal          money.Money   `json:"subtotal"`
	Discount          money.Money   `json:"discount"`
	ShippingFee       money.Money   `json:"shipping_fee"`
	TotalAmount       money.Money   `json:"total_amount"`
	OrderDate         time.Time     `json:"order_date"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	OrderNotes        string        `json:"order_notes,omitempty"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type CheckoutForm struct {
	FirstName       string          `json:"first_name" validate:"required"`
	LastName        string          `json:"last_name" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone" validate:"required,ng_phone"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  *BillingAddress `json:"billing_address,omitempty"`
	OrderNotes      string          `json:"order_notes,omitempty"`
	PaymentMethod   PaymentMethod   `json:"payment_method" validate:"required,oneof=pay-on-delivery"`
}
