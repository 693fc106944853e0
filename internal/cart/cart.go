package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity bounds for a persisted cart line. A requested quantity outside
// the range is clamped, never rejected; zero means "remove the line".
const (
	MinQuantity = 1
	MaxQuantity = 99
)

var flatShipping = decimal.NewFromInt(8)

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// AddToCart puts quantity units of a product into the cart, merging with
// an existing line for the same product. The merge is a single upsert
// guarded by the unique constraint on product_id, so concurrent adds for
// the same product cannot produce duplicate lines or lost updates.
func (c Conf) AddToCart(ctx context.Context, productID string, quantity int) error {
	qty := clampAdd(quantity)

	query := `
		INSERT INTO cart_items (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, $3),
		    updated_at = now()
	`
	_, err := c.db.ExecContext(ctx, query, productID, qty, MaxQuantity)
	if err != nil {
		return fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	return nil
}

// UpdateCartItem overwrites the quantity of an existing line. A clamped
// quantity of zero deletes the line instead. A product with no line in
// the cart is left alone, update never creates.
func (c Conf) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	qty := clampUpdate(quantity)

	if qty == 0 {
		return c.RemoveFromCart(ctx, productID)
	}

	query := `
		UPDATE cart_items
		SET quantity = $2, updated_at = now()
		WHERE product_id = $1
	`
	_, err := c.db.ExecContext(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to update cart item %s: %w", productID, err)
	}
	return nil
}

// RemoveFromCart deletes the line for a product. Removing an absent
// product is a no-op, not an error.
func (c Conf) RemoveFromCart(ctx context.Context, productID string) error {
	query := `
		DELETE FROM cart_items
		WHERE product_id = $1
	`
	_, err := c.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to remove product %s from cart: %w", productID, err)
	}
	return nil
}

// ClearCart empties the cart. Zero-quantity rows are never persisted, so
// the quantity predicate matches every row.
func (c Conf) ClearCart(ctx context.Context) error {
	query := `
		DELETE FROM cart_items
		WHERE quantity > 0
	`
	_, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetCartItems returns every cart line joined with its product, most
// recently added first, with subtotal, flat shipping and total computed
// in fixed-point.
func (c Conf) GetCartItems(ctx context.Context) (View, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.badge, p.rating,
		       p.reviews, p.image, p.inventory, p.created_at, ci.quantity
		FROM cart_items ci
		INNER JOIN products p ON p.id = ci.product_id
		ORDER BY ci.created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return View{}, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		var badge sql.NullString
		err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &badge,
			&it.Rating, &it.Reviews, &it.Image, &it.Inventory, &it.CreatedAt,
			&it.Quantity)
		if err != nil {
			return View{}, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if badge.Valid {
			it.Badge = &badge.String
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return View{}, fmt.Errorf("error iterating cart items: %w", err)
	}

	return buildView(items), nil
}

func buildView(items []Item) View {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = flatShipping
	}

	return View{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// clampAdd bounds an add-to-cart quantity into [MinQuantity, MaxQuantity].
func clampAdd(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// clampUpdate bounds an update quantity into [0, MaxQuantity]; zero is the
// remove signal.
func clampUpdate(quantity int) int {
	if quantity < 0 {
		return 0
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}
