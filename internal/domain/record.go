package domain

import (
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/shopspring/decimal"
)

const (
	PriceDecimalPlaces  = 2
	RatingDecimalPlaces = 1

	MaxRating = 5.0
)

// Categories is the fixed category set shared by every backend.
var Categories = []string{
	"Electronics",
	"Books",
	"Clothing",
	"Food",
	"Toys",
	"Sports",
	"Home & Garden",
}

// Record is the benchmarked entity. Every backend stores the same logical
// values; only the physical representation differs.
type Record struct {
	Name        string          `json:"name" bson:"name"`
	Category    string          `json:"category" bson:"category"`
	Price       decimal.Decimal `json:"price" bson:"-"`
	Stock       int             `json:"stock" bson:"stock"`
	Description string          `json:"description" bson:"description"`
	Rating      float64         `json:"rating" bson:"rating"`
}

// PriceFloat converts the price for engines that store it as a double.
func (r Record) PriceFloat() float64 {
	f, _ := r.Price.Float64()
	return f
}

// PriceFromFloat restores a decimal price read back from a double column.
func PriceFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(PriceDecimalPlaces)
}

func (r Record) Validate() error {
	if r.Name == "" {
		return apperr.NewValidation("record name is required")
	}
	if r.Price.IsNegative() {
		return apperr.NewValidation(fmt.Sprintf("record %q: price must be non-negative", r.Name))
	}
	if r.Stock < 0 {
		return apperr.NewValidation(fmt.Sprintf("record %q: stock must be non-negative", r.Name))
	}
	if r.Rating < 0 || r.Rating > MaxRating {
		return apperr.NewValidation(fmt.Sprintf("record %q: rating must be within [0, %.0f]", r.Name, MaxRating))
	}
	return nil
}

// CloneRecords returns an independent copy of records. Record holds no
// reference types besides decimal.Decimal, which is immutable.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
