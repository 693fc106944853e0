package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productOne = "b3f1a9d2-8c64-4e6f-9a2b-1f0c5d7e8a90"
	productTwo = "4d2e6b8a-0f1c-4a3d-b5e7-9c8d7f6e5a41"
)

func newMock(t *testing.T) (Conf, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conf, err := NewConf(db)
	require.NoError(t, err)
	return conf, mock
}

func TestNewConfNilDB(t *testing.T) {
	_, err := NewConf(nil)
	require.Error(t, err)
}

func TestClampAdd(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -5, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 42, want: 42},
		{in: 99, want: 99},
		{in: 100, want: 99},
		{in: 150, want: 99},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampAdd(tt.in), "clampAdd(%d)", tt.in)
	}
}

func TestClampUpdate(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: 99, want: 99},
		{in: 200, want: 99},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampUpdate(tt.in), "clampUpdate(%d)", tt.in)
	}
}

func TestAddToCartUpsertsClampedQuantity(t *testing.T) {
	conf, mock := newMock(t)

	// The merge must be a single conflict-guarded statement that sums and
	// clamps in place, not an insert that trusts a prior existence check.
	mock.ExpectExec(`INSERT INTO cart_items .+ ON CONFLICT \(product_id\) DO UPDATE\s+SET quantity = LEAST\(cart_items\.quantity \+ EXCLUDED\.quantity, \$3\)`).
		WithArgs(productOne, 99, MaxQuantity).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.AddToCart(context.Background(), productOne, 150)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartDefaultsZeroToOne(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO cart_items`).
		WithArgs(productOne, 1, MaxQuantity).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.AddToCart(context.Background(), productOne, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartPropagatesStorageError(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO cart_items`).
		WithArgs(productOne, 2, MaxQuantity).
		WillReturnError(fmt.Errorf("connection refused"))

	err := conf.AddToCart(context.Background(), productOne, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdateCartItemOverwritesQuantity(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`UPDATE cart_items`).
		WithArgs(productOne, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.UpdateCartItem(context.Background(), productOne, 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemClampsToMax(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`UPDATE cart_items`).
		WithArgs(productOne, 99).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.UpdateCartItem(context.Background(), productOne, 200)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemZeroDeletesLine(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(productOne).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.UpdateCartItem(context.Background(), productOne, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemNegativeDeletesLine(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(productOne).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conf.UpdateCartItem(context.Background(), productOne, -5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The second remove finds no row and must still succeed.
func TestRemoveFromCartIdempotent(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(productOne).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(productOne).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, conf.RemoveFromCart(context.Background(), productOne))
	require.NoError(t, conf.RemoveFromCart(context.Background(), productOne))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCart(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM cart_items\s+WHERE quantity > 0`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := conf.ClearCart(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func cartRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "badge", "rating",
		"reviews", "image", "inventory", "created_at", "quantity",
	})
}

func TestGetCartItemsBuildsView(t *testing.T) {
	conf, mock := newMock(t)

	now := time.Now().UTC()
	rows := cartRows().
		AddRow(productTwo, "Virtual Scroller", "desc", "49.99", nil, "4.4", 92, "/logo.png", "in-stock", now, 1).
		AddRow(productOne, "Router Pro", "desc", "99.99", "New", "4.8", 127, "/logo.png", "in-stock", now, 2)

	mock.ExpectQuery(`SELECT .+ FROM cart_items ci\s+INNER JOIN products p`).
		WillReturnRows(rows)

	view, err := conf.GetCartItems(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	// Row order from storage (most recently added first) is preserved
	assert.Equal(t, productTwo, view.Items[0].ID)
	assert.Equal(t, productOne, view.Items[1].ID)
	assert.Equal(t, 2, view.Items[1].Quantity)
	require.NotNil(t, view.Items[1].Badge)
	assert.Equal(t, "New", *view.Items[1].Badge)

	// 49.99*1 + 99.99*2 = 249.97, plus the flat 8.00 shipping
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("249.97")), "subtotal %s", view.Subtotal)
	assert.True(t, view.Shipping.Equal(decimal.NewFromInt(8)), "shipping %s", view.Shipping)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("257.97")), "total %s", view.Total)
}

func TestGetCartItemsEmptyCartNoShipping(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM cart_items ci`).
		WillReturnRows(cartRows())

	view, err := conf.GetCartItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Subtotal.IsZero())
	assert.True(t, view.Shipping.IsZero())
	assert.True(t, view.Total.IsZero())
}

func TestGetCartItemsPropagatesStorageError(t *testing.T) {
	conf, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM cart_items ci`).
		WillReturnError(fmt.Errorf("db down"))

	_, err := conf.GetCartItems(context.Background())
	require.Error(t, err)
}
