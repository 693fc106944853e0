package products

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	products []Product
	err      error
	calls    int
}

func (s *stubStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.calls++
	return s.products, s.err
}

func (s *stubStore) ListRecommended(ctx context.Context) ([]Product, error) {
	s.calls++
	return s.products, s.err
}

func (s *stubStore) GetProductByID(ctx context.Context, productID string) (Product, error) {
	s.calls++
	if s.err != nil {
		return Product{}, s.err
	}
	if len(s.products) == 0 {
		return Product{}, ErrNotFound
	}
	return s.products[0], nil
}

func (s *stubStore) InsertProduct(ctx context.Context, np NewProduct) (Product, error) {
	s.calls++
	if s.err != nil {
		return Product{}, s.err
	}
	return Product{ID: testProductID, Name: np.Name}, nil
}

func (s *stubStore) DeleteProduct(ctx context.Context, productID string) error {
	s.calls++
	return s.err
}

func TestAllProductsDegradesToEmptyOnFailure(t *testing.T) {
	svc := NewService(&stubStore{err: fmt.Errorf("db unreachable")})

	out := svc.AllProducts(context.Background())
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRecommendedProductsDegradesToEmptyOnFailure(t *testing.T) {
	svc := NewService(&stubStore{err: fmt.Errorf("db unreachable")})

	out := svc.RecommendedProducts(context.Background())
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAllProductsPassesThrough(t *testing.T) {
	svc := NewService(&stubStore{products: []Product{{ID: testProductID, Name: "Router Pro"}}})

	out := svc.AllProducts(context.Background())
	require.Len(t, out, 1)
	assert.Equal(t, "Router Pro", out[0].Name)
}

// Absence and storage failure stay distinguishable on the lookup path.
func TestProductByIDKeepsErrorsApart(t *testing.T) {
	svc := NewService(&stubStore{})
	_, err := svc.ProductByID(context.Background(), testProductID)
	require.ErrorIs(t, err, ErrNotFound)

	storageErr := fmt.Errorf("connection reset")
	svc = NewService(&stubStore{err: storageErr})
	_, err = svc.ProductByID(context.Background(), testProductID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCreateProductPropagatesFailure(t *testing.T) {
	svc := NewService(&stubStore{err: fmt.Errorf("constraint violation")})
	_, err := svc.CreateProduct(context.Background(), NewProduct{Name: "x"})
	require.Error(t, err)
}
