package query

import "strings"

// Key addresses one cached read endpoint: an ordered tuple of segments,
// e.g. ["cart","items"]. Keys form families by prefix so a whole family
// can be invalidated after a write.
type Key []string

func NewKey(segments ...string) Key {
	return Key(segments)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k sits under the given key family.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

// Key families used by the storefront endpoints.
var (
	KeyProducts            = NewKey("products")
	KeyRecommendedProducts = NewKey("recommended-products")
	KeyCart                = NewKey("cart")
	KeyCartItems           = NewKey("cart", "items")
)

// KeyProductDetail addresses a single product's detail endpoint.
func KeyProductDetail(productID string) Key {
	return NewKey("product", productID)
}
