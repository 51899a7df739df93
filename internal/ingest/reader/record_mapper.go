package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/shopspring/decimal"
)

// Columns is the header a product CSV must carry.
var Columns = []string{"name", "category", "price", "stock", "description", "rating"}

// MapRecord converts one CSV row into a validated record.
func MapRecord(row map[string]string) (domain.Record, error) {
	for _, c := range Columns {
		if _, ok := row[c]; !ok {
			return domain.Record{}, fmt.Errorf("missing column %q", c)
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row["price"]))
	if err != nil {
		return domain.Record{}, fmt.Errorf("price: %w", err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row["stock"]))
	if err != nil {
		return domain.Record{}, fmt.Errorf("stock: %w", err)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(row["rating"]), 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("rating: %w", err)
	}

	r := domain.Record{
		Name:        row["name"],
		Category:    row["category"],
		Price:       price,
		Stock:       stock,
		Description: row["description"],
		Rating:      rating,
	}
	if err := r.Validate(); err != nil {
		return domain.Record{}, err
	}
	return r, nil
}
