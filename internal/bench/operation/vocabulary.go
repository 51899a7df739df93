package operation

import "github.com/shopspring/decimal"

// MaxHits caps the result set of every full-text query.
const MaxHits = 20

// Read filters shared by every backend.
const ReadCategory = "Electronics"

var (
	ReadMinPrice = decimal.NewFromInt(100)
	ReadMaxPrice = decimal.NewFromInt(500)
)

// SimpleTerms is the single-term vocabulary used by FullTextSearchSimple.
// All backends draw from the same literal list so result sets stay comparable.
var SimpleTerms = []string{
	"Product",
	"detailed",
	"description",
	"Electronics",
	"Books",
	"quality",
	"premium",
}

type Scenario struct {
	Phrase   string
	MinPrice float64
	MaxPrice float64
}

// ComplexScenarios combines phrases with hard price filters for FullTextSearchComplex.
var ComplexScenarios = []Scenario{
	{Phrase: "high quality product", MinPrice: 50, MaxPrice: 800},
	{Phrase: "electronics premium", MinPrice: 100, MaxPrice: 1000},
	{Phrase: "detailed description", MinPrice: 10, MaxPrice: 500},
	{Phrase: "product rating", MinPrice: 20, MaxPrice: 600},
	{Phrase: "category books", MinPrice: 10, MaxPrice: 300},
}
