package generator

import (
	"fmt"
	"sync"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/pkg/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

const (
	MinPrice  = 10.0
	MaxPrice  = 1000.0
	MinStock  = 0
	MaxStock  = 1000
	MinRating = 1.0
	MaxRating = 5.0
)

type template struct {
	Name        string
	Description string
}

// templates holds curated name/description pairs that give the search
// engines realistic text to match against.
var templates = map[string][]template{
	"Electronics": {
		{"Smartphone Pro Max", "High-quality premium smartphone with advanced camera and long battery life"},
		{"Wireless Headphones", "Premium wireless headphones with noise cancellation and superior sound quality"},
		{"Gaming Laptop", "Powerful gaming laptop with high-performance graphics and fast processor"},
		{"Smart TV", "Ultra HD smart television with streaming capabilities and voice control"},
		{"Tablet Device", "Lightweight tablet with high-resolution display and long-lasting battery"},
	},
	"Books": {
		{"Programming Guide", "Comprehensive programming guide for beginners and advanced developers"},
		{"Science Fiction Novel", "Exciting science fiction story with detailed world-building and characters"},
		{"Cooking Recipes", "Collection of delicious recipes with detailed instructions and tips"},
		{"History Book", "In-depth historical analysis with detailed research and documentation"},
		{"Self-Help Manual", "Practical self-improvement guide with actionable advice and strategies"},
	},
	"Clothing": {
		{"Premium T-Shirt", "High-quality cotton t-shirt with comfortable fit and durable fabric"},
		{"Designer Jeans", "Stylish designer jeans with premium denim and perfect fit"},
		{"Winter Jacket", "Warm winter jacket with weather protection and comfortable design"},
		{"Running Shoes", "Professional running shoes with advanced cushioning and support"},
		{"Casual Dress", "Elegant casual dress with premium fabric and versatile style"},
	},
}

type Option func(*Generator)

// WithSeed makes the generated values reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.fake = gofakeit.New(seed)
	}
}

type Generator struct {
	mu   sync.Mutex
	fake *gofakeit.Faker
}

func New(opts ...Option) *Generator {
	g := &Generator{fake: gofakeit.New(0)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count records with randomized content and a fixed shape.
func (g *Generator) Generate(count int) []domain.Record {
	if count <= 0 {
		return []domain.Record{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	records := make([]domain.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.record(i))
	}
	return records
}

func (g *Generator) record(i int) domain.Record {
	category := g.fake.RandomString(domain.Categories)

	var name, description string
	if pool, ok := templates[category]; ok {
		t := pool[g.fake.Number(0, len(pool)-1)]
		name = fmt.Sprintf("%s %d", t.Name, i)
		description = fmt.Sprintf("%s. Product ID: %d. Detailed specifications and features included.", t.Description, i)
	} else {
		name = fmt.Sprintf("Product %d", i)
		description = fmt.Sprintf("This is a detailed description for product %d in %s category. High quality and reliable.", i, category)
	}

	return domain.Record{
		Name:        name,
		Category:    category,
		Price:       decimal.NewFromFloat(g.fake.Float64Range(MinPrice, MaxPrice)).Round(domain.PriceDecimalPlaces),
		Stock:       g.fake.Number(MinStock, MaxStock),
		Description: description,
		Rating:      utils.RoundDecimal(g.fake.Float64Range(MinRating, MaxRating), domain.RatingDecimalPlaces),
	}
}

var defaultGenerator = New()

// Generate uses a process-wide generator.
func Generate(count int) []domain.Record {
	return defaultGenerator.Generate(count)
}
