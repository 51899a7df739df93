package in_mem

import (
	"context"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name, category, price string) domain.Record {
	return domain.Record{
		Name:        name,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		Description: "A detailed description of " + name,
		Rating:      4.2,
	}
}

func TestInMemStorer_WriteAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory", storage.WithSeed(1))

	m, err := s.Write(ctx, []domain.Record{record("Product 0", "Electronics", "199.99")})
	require.NoError(t, err)
	assert.Equal(t, "Write", m.Label)

	got, err := s.Find(ctx, "category", "Electronics")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Product 0", got[0].Name)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("199.99")))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInMemStorer_WriteRejectsInvalidRecord(t *testing.T) {
	s := NewInMemStorer("memory")

	bad := record("Product 0", "Electronics", "-1")
	_, err := s.Write(context.Background(), []domain.Record{bad})

	var we *apperr.BackendWriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "memory", we.Backend)
}

func TestInMemStorer_Reset(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory")

	_, err := s.Write(ctx, generator.New(generator.WithSeed(3)).Generate(50))
	require.NoError(t, err)
	require.NoError(t, s.Reset(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInMemStorer_ReadCollectsLatencies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory", storage.WithSeed(7))
	_, err := s.Write(ctx, generator.New(generator.WithSeed(7)).Generate(100))
	require.NoError(t, err)

	m, err := s.Read(ctx, 5, "")
	require.NoError(t, err)
	assert.Equal(t, "Read", m.Label)
	assert.Len(t, m.Latencies, 5)

	m, err = s.Read(ctx, 3, "name")
	require.NoError(t, err)
	assert.Len(t, m.Latencies, 3)
}

func TestInMemStorer_ReadUnknownField(t *testing.T) {
	s := NewInMemStorer("memory")

	_, err := s.Read(context.Background(), 1, "color")

	var ue *apperr.UnsupportedFieldError
	assert.True(t, errors.As(err, &ue))
}

func TestInMemStorer_Aggregate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory")
	_, err := s.Write(ctx, []domain.Record{
		record("a", "Books", "10.00"),
		record("b", "Books", "20.00"),
		record("c", "Electronics", "300.00"),
	})
	require.NoError(t, err)

	stats := s.aggregate()
	require.Len(t, stats, 2)
	assert.Equal(t, "Electronics", stats[0].Category)
	assert.Equal(t, "Books", stats[1].Category)
	assert.True(t, stats[1].AvgPrice.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, int64(2), stats[1].Count)

	m, err := s.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aggregate", m.Label)
}

func TestInMemStorer_SearchCapsHits(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory")
	_, err := s.Write(ctx, generator.New(generator.WithSeed(11)).Generate(200))
	require.NoError(t, err)

	hits := s.search([]string{"product"}, func(r domain.Record) string { return r.Name }, nil)
	assert.Len(t, hits, operation.MaxHits)

	m, err := s.FullTextSearchSimple(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, m.Latencies, 4)

	m, err = s.FullTextSearchComplex(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "FullTextSearchComplex", m.Label)
}

func TestInMemStorer_FindAcceptsEveryProviderField(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer("memory", storage.WithSeed(2))
	_, err := s.Write(ctx, generator.New(generator.WithSeed(2)).Generate(20))
	require.NoError(t, err)

	for _, field := range fieldvalue.Default.Fields() {
		m, err := s.Read(ctx, 2, field)
		require.NoError(t, err, field)
		assert.Len(t, m.Latencies, 2, field)
	}
}
