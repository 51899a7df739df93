package fieldvalue

import (
	"context"
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/brianvoe/gofakeit/v6"
)

// Counter reports how many records a backend currently stores.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Func produces one exact-match value. recordCount is zero for fields that
// do not need it.
type Func func(fake *gofakeit.Faker, recordCount int64) any

type Field struct {
	NeedsCount bool
	Value      Func
}

// Provider maps field names to value generators for field-targeted reads.
// The field set is fixed at construction and read-only afterwards.
type Provider struct {
	fields map[string]Field
}

func New() *Provider {
	return &Provider{
		fields: map[string]Field{
			"category": {
				Value: func(_ *gofakeit.Faker, _ int64) any { return "Electronics" },
			},
			"name": {
				NeedsCount: true,
				Value: func(fake *gofakeit.Faker, n int64) any {
					if n <= 0 {
						return "Product 0"
					}
					return fmt.Sprintf("Product %d", fake.Number(0, int(n-1)))
				},
			},
			"stock": {
				Value: func(fake *gofakeit.Faker, _ int64) any {
					return fake.Number(generator.MinStock, generator.MaxStock)
				},
			},
		},
	}
}

var Default = New()

func (p *Provider) Validate(field string) error {
	if _, ok := p.fields[field]; !ok {
		return apperr.NewUnsupportedField(field)
	}
	return nil
}

func (p *Provider) Fields() []string {
	names := make([]string, 0, len(p.fields))
	for name := range p.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values resolves field to a value source. The record count, when needed,
// is fetched once up front.
func (p *Provider) Values(ctx context.Context, field string, counter Counter, fake *gofakeit.Faker) (func() any, error) {
	f, ok := p.fields[field]
	if !ok {
		return nil, apperr.NewUnsupportedField(field)
	}

	var n int64
	if f.NeedsCount {
		var err error
		n, err = counter.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count records for field %q: %w", field, err)
		}
	}

	return func() any {
		return f.Value(fake, n)
	}, nil
}
