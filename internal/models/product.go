package models

import (
	"time"

	"github.com/smarttools-ng/storefront/internal/money"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Product is read-only reference data owned by the catalog. The cart
// copies it at add time and never revalidates it afterwards.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         money.Money `json:"price"`
	OriginalPrice money.Money `json:"original_price,omitempty"`
	Images        []string    `json:"images"`
	Category      string      `json:"category"`
	Brand         string      `json:"brand,omitempty"`
	InStock       bool        `json:"in_stock"`
	StockQuantity int         `json:"stock_quantity"`
	Tags          []string    `json:"tags,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
