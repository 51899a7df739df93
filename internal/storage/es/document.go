package es

import (
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/google/uuid"
)

// Document is the indexed shape of a record.
type Document struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

func NewDocument(r domain.Record) Document {
	return Document{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.PriceFloat(),
		Stock:       r.Stock,
		Description: r.Description,
		Rating:      r.Rating,
	}
}

func (d Document) Record() domain.Record {
	return domain.Record{
		Name:        d.Name,
		Category:    d.Category,
		Price:       domain.PriceFromFloat(d.Price),
		Stock:       d.Stock,
		Description: d.Description,
		Rating:      d.Rating,
	}
}

// fieldPaths maps record fields to the indexed path used for exact matches.
var fieldPaths = map[string]string{
	"name":     "name.keyword",
	"category": "category.keyword",
	"stock":    "stock",
}

func exactPath(field string) string {
	if p, ok := fieldPaths[field]; ok {
		return p
	}
	return field
}
