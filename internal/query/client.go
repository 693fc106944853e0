package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/michaelgivor/stackshop-app/internal/cart"
	"github.com/michaelgivor/stackshop-app/internal/products"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

// ProductReader is the read surface of the product service.
type ProductReader interface {
	AllProducts(ctx context.Context) []products.Product
	RecommendedProducts(ctx context.Context) []products.Product
	ProductByID(ctx context.Context, productID string) (products.Product, error)
}

// CartStore is the cart service surface the query layer dispatches to.
type CartStore interface {
	AddToCart(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
	GetCartItems(ctx context.Context) (cart.View, error)
}

// Cart mutation actions accepted by the multiplexed endpoint.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionUpdate = "update"
	ActionClear  = "clear"
)

// MutateCartInput is the tagged input of the single cart-mutation
// endpoint. ProductID and Quantity only apply to add/remove/update; a
// clear ignores them. A nil Quantity means "unspecified" and defaults
// to one.
type MutateCartInput struct {
	Action    string `json:"action" validate:"required,oneof=add remove update clear"`
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// Client fronts the read endpoints with the tiered cache and funnels all
// cart mutations through one dispatch that invalidates the cart family.
type Client struct {
	productSvc ProductReader
	cartConf   CartStore
	cache      *Cache
	tiers      Tiers

	mu         sync.Mutex
	refreshing map[string]bool
}

func NewClient(productSvc ProductReader, cartConf CartStore, tiers Tiers) *Client {
	return &Client{
		productSvc: productSvc,
		cartConf:   cartConf,
		cache:      NewCache(tiers),
		tiers:      tiers,
		refreshing: make(map[string]bool),
	}
}

// Products serves the catalog listing through the SEMI_STATIC tier.
func (c *Client) Products(ctx context.Context) []products.Product {
	v := c.cached(ctx, c.tiers.SemiStatic, KeyProducts, func(ctx context.Context) (any, error) {
		return c.productSvc.AllProducts(ctx), nil
	})
	out, _ := v.([]products.Product)
	return out
}

// RecommendedProducts serves the recommendation strip through the STATIC
// tier; it is the least volatile read in the app.
func (c *Client) RecommendedProducts(ctx context.Context) []products.Product {
	v := c.cached(ctx, c.tiers.Static, KeyRecommendedProducts, func(ctx context.Context) (any, error) {
		return c.productSvc.RecommendedProducts(ctx), nil
	})
	out, _ := v.([]products.Product)
	return out
}

// ProductByID serves a product detail through the SEMI_STATIC tier.
// Not-found and storage errors are never cached.
func (c *Client) ProductByID(ctx context.Context, productID string) (products.Product, error) {
	key := KeyProductDetail(productID)
	if v, ok, stale := c.cache.Get(c.tiers.SemiStatic, key); ok {
		if stale {
			c.refresh(ctx, c.tiers.SemiStatic, key, func(ctx context.Context) (any, error) {
				return c.productSvc.ProductByID(ctx, productID)
			})
		}
		return v.(products.Product), nil
	}

	p, err := c.productSvc.ProductByID(ctx, productID)
	if err != nil {
		return products.Product{}, err
	}
	c.cache.Set(c.tiers.SemiStatic, key, p)
	return p, nil
}

// CartItems serves the cart view through the REALTIME tier, which has a
// zero stale window: a hit is always revalidated, so in practice every
// read goes to storage unless a fresh write just populated it.
func (c *Client) CartItems(ctx context.Context) (cart.View, error) {
	key := KeyCartItems
	if v, ok, stale := c.cache.Get(c.tiers.Realtime, key); ok && !stale {
		return v.(cart.View), nil
	}

	view, err := c.cartConf.GetCartItems(ctx)
	if err != nil {
		return cart.View{}, err
	}
	c.cache.Set(c.tiers.Realtime, key, view)
	return view, nil
}

// MutateCart dispatches a tagged mutation to the cart service and, on
// success, invalidates the whole cart key family so the next read bypasses
// the cache. Storage failures propagate unchanged.
func (c *Client) MutateCart(ctx context.Context, input MutateCartInput) error {
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}

	var err error
	switch input.Action {
	case ActionAdd:
		err = c.cartConf.AddToCart(ctx, input.ProductID, qty)
	case ActionRemove:
		err = c.cartConf.RemoveFromCart(ctx, input.ProductID)
	case ActionUpdate:
		err = c.cartConf.UpdateCartItem(ctx, input.ProductID, qty)
	case ActionClear:
		err = c.cartConf.ClearCart(ctx)
	default:
		return fmt.Errorf("unknown cart action %q", input.Action)
	}
	if err != nil {
		return err
	}

	c.cache.Invalidate(KeyCart)
	return nil
}

// Invalidate exposes targeted invalidation for callers outside the cart
// mutation path (product create/delete).
func (c *Client) Invalidate(prefix Key) {
	c.cache.Invalidate(prefix)
}

// cached runs the read through the cache: a fresh hit is returned as is; a
// stale hit is returned while a background refresh repopulates the entry;
// a miss fetches inline.
func (c *Client) cached(ctx context.Context, tier Tier, key Key, fetch func(context.Context) (any, error)) any {
	if v, ok, stale := c.cache.Get(tier, key); ok {
		if stale {
			c.refresh(ctx, tier, key, fetch)
		}
		return v
	}

	v, err := fetch(ctx)
	if err != nil {
		return v
	}
	c.cache.Set(tier, key, v)
	return v
}

// refresh repopulates one entry in the background, at most once at a time
// per key. The refresh outlives the request that noticed the staleness.
func (c *Client) refresh(ctx context.Context, tier Tier, key Key, fetch func(context.Context) (any, error)) {
	c.mu.Lock()
	if c.refreshing[key.String()] {
		c.mu.Unlock()
		return
	}
	c.refreshing[key.String()] = true
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key.String())
			c.mu.Unlock()
		}()

		v, err := fetch(ctx)
		if err != nil {
			slog.Error("background refresh failed",
				slog.String("Key", key.String()), slog.String(logkey.ERROR, err.Error()))
			return
		}
		c.cache.Set(tier, key, v)
	}()
}
