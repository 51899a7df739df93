package mongo

import "github.com/DjordjeVuckovic/polybench/internal/domain"

// Document is the stored shape of a record. Price is stored as a double.
type Document struct {
	Name        string  `bson:"name"`
	Category    string  `bson:"category"`
	Price       float64 `bson:"price"`
	Stock       int     `bson:"stock"`
	Description string  `bson:"description"`
	Rating      float64 `bson:"rating"`
}

func NewDocument(r domain.Record) Document {
	return Document{
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

type CategoryStats struct {
	Category string  `bson:"_id"`
	AvgPrice float64 `bson:"avg_price"`
	Count    int64   `bson:"count"`
}
