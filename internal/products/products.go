package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound reports that no product row matched the given id.
var ErrNotFound = errors.New("product not found")

const productColumns = `id, name, description, price, badge, rating, reviews, image, inventory, created_at`

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// ListProducts returns every product in relation order.
func (c Conf) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListRecommended returns a bounded prefix of the catalog, used for the
// recommendation strip.
func (c Conf) ListRecommended(ctx context.Context) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		LIMIT 3
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommended products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// GetProductByID fetches one product, returning ErrNotFound when no row
// matches.
func (c Conf) GetProductByID(ctx context.Context, productID string) (Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	p, err := scanProduct(c.db.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("failed to query product %s: %w", productID, err)
	}
	return p, nil
}

// InsertProduct saves a new product and reads back the committed row,
// generated id and defaults included, in one statement.
func (c Conf) InsertProduct(ctx context.Context, np NewProduct) (Product, error) {
	inventory := np.Inventory
	if inventory == "" {
		inventory = InventoryInStock
	}
	var badge *string
	if np.Badge != "" {
		badge = &np.Badge
	}

	query := `
		INSERT INTO products (name, description, price, badge, image, inventory)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns + `
	`
	p, err := scanProduct(c.db.QueryRowContext(ctx, query,
		np.Name, np.Description, np.Price, badge, np.Image, inventory))
	if err != nil {
		return Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product; dependent cart rows go with it through
// the foreign-key cascade. Returns ErrNotFound when nothing was deleted.
func (c Conf) DeleteProduct(ctx context.Context, productID string) error {
	query := `
		DELETE FROM products
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var badge sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &badge,
		&p.Rating, &p.Reviews, &p.Image, &p.Inventory, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	if badge.Valid {
		p.Badge = &badge.String
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return out, nil
}
