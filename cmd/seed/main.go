// Seeds the products table with the sample catalog. With -reset, existing
// cart items and products are deleted first, in foreign-key order.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/michaelgivor/stackshop-app/internal/products"
	"github.com/michaelgivor/stackshop-app/internal/stores/postgres"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

func main() {
	reset := flag.Bool("reset", false, "delete all cart items and products before seeding")
	flag.Parse()

	if err := run(*reset); err != nil {
		slog.Error("failed to seed database", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func run(reset bool) error {
	_ = godotenv.Load()

	db, err := postgres.OpenDB()
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if reset {
		slog.Info("clearing existing data")
		// Cart items first, they reference products
		if _, err := db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		if _, err := db.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
	}

	if err := insertSampleProducts(ctx, db); err != nil {
		return err
	}

	slog.Info("database seeded", slog.Int("Products", len(sampleProducts)))
	return nil
}

func insertSampleProducts(ctx context.Context, db *sql.DB) error {
	conf, err := products.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create products conf: %w", err)
	}

	for _, np := range sampleProducts {
		p, err := conf.InsertProduct(ctx, np)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", np.Name, err)
		}
		// Sample ratings and review counts are part of the fixture, the
		// insert path deliberately defaults them.
		query := `
			UPDATE products
			SET rating = $2, reviews = $3
			WHERE id = $1
		`
		seed := sampleRatings[np.Name]
		if _, err := db.ExecContext(ctx, query, p.ID, seed.rating, seed.reviews); err != nil {
			return fmt.Errorf("failed to set rating for %q: %w", np.Name, err)
		}
	}
	return nil
}
