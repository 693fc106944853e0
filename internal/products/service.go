package products

import (
	"context"
	"log/slog"

	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

// Store is the storage surface the service composes over. Conf satisfies
// it; tests swap in a stub.
type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListRecommended(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, productID string) (Product, error)
	InsertProduct(ctx context.Context, np NewProduct) (Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// Service applies the read-containment policy: catalog listings degrade to
// an empty result on storage failure so browsing stays up, while lookups
// and writes surface their errors.
type Service struct {
	store Store
}

func NewService(store Store) Service {
	return Service{store: store}
}

// AllProducts returns the whole catalog. A storage failure is logged and
// collapsed to an empty slice.
func (s Service) AllProducts(ctx context.Context) []Product {
	out, err := s.store.ListProducts(ctx)
	if err != nil {
		slog.Error("error fetching all products", slog.String(logkey.ERROR, err.Error()))
		return []Product{}
	}
	if out == nil {
		return []Product{}
	}
	return out
}

// RecommendedProducts returns the recommendation strip with the same
// containment as AllProducts.
func (s Service) RecommendedProducts(ctx context.Context) []Product {
	out, err := s.store.ListRecommended(ctx)
	if err != nil {
		slog.Error("error fetching recommended products", slog.String(logkey.ERROR, err.Error()))
		return []Product{}
	}
	if out == nil {
		return []Product{}
	}
	return out
}

// ProductByID keeps absence and failure distinguishable: callers check
// errors.Is(err, ErrNotFound) and treat anything else as a storage error.
func (s Service) ProductByID(ctx context.Context, productID string) (Product, error) {
	return s.store.GetProductByID(ctx, productID)
}

func (s Service) CreateProduct(ctx context.Context, np NewProduct) (Product, error) {
	return s.store.InsertProduct(ctx, np)
}

func (s Service) DeleteProduct(ctx context.Context, productID string) error {
	return s.store.DeleteProduct(ctx, productID)
}
