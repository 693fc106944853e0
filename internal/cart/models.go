package cart

import (
	"github.com/shopspring/decimal"

	"github.com/michaelgivor/stackshop-app/internal/products"
)

// Item is one cart line joined with its product: the product fields plus
// the quantity held in the cart.
type Item struct {
	products.Product
	Quantity int `json:"quantity"`
}

// View is the cart as the storefront renders it. Shipping is a flat
// surcharge applied whenever the cart is non-empty; nothing here is
// persisted.
type View struct {
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}
