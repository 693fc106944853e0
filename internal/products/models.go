package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Badge values a product may carry on its catalog card.
const (
	BadgeNew      = "New"
	BadgeSale     = "Sale"
	BadgeFeatured = "Featured"
	BadgeLimited  = "Limited"
)

// Inventory states a product can be in.
const (
	InventoryInStock   = "in-stock"
	InventoryBackorder = "backorder"
	InventoryPreorder  = "preorder"
)

// Product is one row of the products relation. Price and Rating are
// numeric(10,2)/numeric(3,2) in storage and stay fixed-point here.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Badge       *string         `json:"badge"`
	Rating      decimal.Decimal `json:"rating"`
	Reviews     int             `json:"reviews"`
	Image       string          `json:"image"`
	Inventory   string          `json:"inventory"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProduct is the create-product payload. Rating and reviews are not
// accepted from callers, the table defaults them.
type NewProduct struct {
	Name        string          `json:"name" validate:"required,max=256"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Badge       string          `json:"badge" validate:"omitempty,oneof=New Sale Featured Limited"`
	Image       string          `json:"image" validate:"required,max=512"`
	Inventory   string          `json:"inventory" validate:"omitempty,oneof=in-stock backorder preorder"`
}
