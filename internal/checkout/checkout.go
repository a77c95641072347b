// Package checkout validates customer form input and transforms a cart
// snapshot into an immutable order. The transformer computes; the caller
// commits (persists the order, clears the cart).
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/smarttools-ng/storefront/internal/errors"
	"github.com/smarttools-ng/storefront/internal/models"
	"github.com/smarttools-ng/storefront/internal/shipping"
)

type Transformer struct {
	validate *validator.Validate
	sanitize *bluemonday.Policy
	now      func() time.Time
}

func NewTransformer() *Transformer {
	v := validator.New()

	// the error is only possible for a blank tag name
	_ = v.RegisterValidation("ng_phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})

	return &Transformer{
		validate: v,
		sanitize: bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// form field keys as the UI knows them
var fieldKeys = map[string]string{
	"FirstName":     "first_name",
	"LastName":      "last_name",
	"Email":         "email",
	"Phone":         "phone",
	"Street":        "street",
	"City":          "city",
	"State":         "state",
	"LGA":           "lga",
	"PaymentMethod": "payment_method",
}

// Validate checks the checkout form and returns a field→message map.
// An empty map means the form is valid.
func (t *Transformer) Validate(form *models.CheckoutForm) map[string]string {
	fieldErrors := make(map[string]string)

	err := t.validate.Struct(form)
	if err == nil {
		return fieldErrors
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors["general"] = "Invalid checkout form"

		return fieldErrors
	}

	for _, fieldErr := range validationErrs {
		key, known := fieldKeys[fieldErr.Field()]
		if !known {
			key = strings.ToLower(fieldErr.Field())
		}

		fieldErrors[key] = messageFor(fieldErr)
	}

	return fieldErrors
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		switch fieldErr.Field() {
		case "FirstName":
			return "First name is required"
		case "LastName":
			return "Last name is required"
		case "Email":
			return "Email is required"
		case "Phone":
			return "Phone number is required"
		case "Street":
			return "Street address is required"
		case "City":
			return "City is required"
		case "State":
			return "State is required"
		case "LGA":
			return "Local Government Area is required"
		}

		return fieldErr.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "ng_phone":
		return "Invalid Nigerian phone number"
	case "oneof":
		return "Unsupported payment method"
	}

	return "Invalid value"
}

// CreateOrder freezes a non-empty cart plus validated form data into an
// Order with status pending. It never mutates the cart; clearing it and
// persisting the order are the caller's responsibility.
func (t *Transformer) CreateOrder(c models.Cart, form *models.CheckoutForm) (*models.Order, error) {
	if len(c.Items) == 0 {
		return nil, appErrors.EmptyCartError("Cannot place an order with an empty cart")
	}

	now := t.now()
	orderNumber := newOrderNumber(now)

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		item := models.OrderItem{
			ID:            line.ID,
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			Price:         line.Product.Price,
			OriginalPrice: line.Product.OriginalPrice,
			Quantity:      line.Quantity,
			Brand:         line.Product.Brand,
			WeightGrams:   shipping.EstimateWeight(line.Product.Name),
		}

		if len(line.Product.Images) > 0 {
			item.Image = line.Product.Images[0]
		}

		items = append(items, item)
	}

	order := &models.Order{
		ID:          orderNumber,
		OrderNumber: orderNumber,
		Status:      models.OrderStatusPending,
		Customer: models.Customer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     NormalizePhone(form.Phone),
		},
		Items:             items,
		ShippingAddress:   form.ShippingAddress,
		BillingAddress:    billingFor(form),
		Subtotal:          c.Subtotal,
		Discount:          c.Discount,
		ShippingFee:       c.ShippingFee,
		TotalAmount:       c.TotalAmount,
		OrderDate:         now,
		EstimatedDelivery: EstimateDelivery(form.ShippingAddress.State, form.ShippingAddress.City, now),
		OrderNotes:        t.sanitize.Sanitize(form.OrderNotes),
		PaymentMethod:     models.PaymentPayOnDelivery,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return order, nil
}

func billingFor(form *models.CheckoutForm) *models.Address {
	billing := form.BillingAddress
	if billing == nil || billing.SameAsShipping {
		shipping := form.ShippingAddress

		return &shipping
	}

	return &models.Address{
		Street:  billing.Street,
		City:    billing.City,
		State:   billing.State,
		LGA:     billing.LGA,
		ZipCode: billing.ZipCode,
	}
}

// newOrderNumber builds a human-scannable identifier: millisecond
// timestamp plus a random suffix, unique with overwhelming probability
// for submissions from one client.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])

	return fmt.Sprintf("STH-%d-%s", now.UnixMilli(), suffix)
}
