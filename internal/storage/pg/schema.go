package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	Type  = storage.PG
	Table = "products"
)

// schema mirrors db/migrations/001_products.up.sql.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(200)   NOT NULL,
		category    VARCHAR(100)   NOT NULL,
		price       NUMERIC(10, 2) NOT NULL,
		stock       INTEGER        NOT NULL,
		description TEXT           NOT NULL,
		rating      DOUBLE PRECISION NOT NULL,
		CONSTRAINT price_non_negative CHECK (price >= 0),
		CONSTRAINT stock_non_negative CHECK (stock >= 0),
		CONSTRAINT rating_range_valid CHECK (rating >= 0 AND rating <= 5)
	)`,
	`CREATE INDEX IF NOT EXISTS products_name_idx ON products (name)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
	`CREATE INDEX IF NOT EXISTS products_price_idx ON products (price)`,
	`CREATE INDEX IF NOT EXISTS products_rating_idx ON products (rating)`,
	`CREATE INDEX IF NOT EXISTS products_category_price_idx ON products (category, price)`,
	`CREATE INDEX IF NOT EXISTS products_fulltext_gin_idx
		ON products USING GIN (to_tsvector('english', name || ' ' || description || ' ' || category))`,
	`CREATE INDEX IF NOT EXISTS products_name_trgm_idx ON products USING GIN (name gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS products_description_trgm_idx ON products USING GIN (description gin_trgm_ops)`,
}

// EnsureSchema creates the products table and its indexes when missing.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	slog.Info("postgres schema ready", "table", Table)
	return nil
}
