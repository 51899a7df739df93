package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/polybench/pkg/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_RoundTrip(t *testing.T) {
	rec := domain.Record{
		Name:        "Product 3",
		Category:    "Toys",
		Price:       decimal.RequireFromString("19.99"),
		Stock:       4,
		Description: "desc",
		Rating:      4.1,
	}

	doc := NewDocument(rec)
	assert.InDelta(t, 19.99, doc.Price, 1e-9)

	back := doc.Record()
	assert.True(t, rec.Price.Equal(back.Price))
	assert.Equal(t, rec.Name, back.Name)
	assert.Equal(t, rec.Stock, back.Stock)
}

func newTestStorer(t *testing.T) *Storer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	ctx := context.Background()
	c := pkgtesting.NewMongoContainer(ctx, t)

	client, err := NewClient(ctx, ClientConfig{URI: c.URI})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	coll := client.Database(DefaultDatabase).Collection(DefaultCollection)
	require.NoError(t, EnsureIndexes(ctx, coll))

	return NewStorer("mongo", coll, storage.WithSeed(9))
}

func TestStorer_Integration(t *testing.T) {
	s := newTestStorer(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	t.Run("write then find", func(t *testing.T) {
		require.NoError(t, s.Reset(ctx))

		rec := domain.Record{
			Name:        "Product 0",
			Category:    "Sports",
			Price:       decimal.RequireFromString("75.25"),
			Stock:       12,
			Description: "A detailed description",
			Rating:      2.5,
		}
		_, err := s.Write(ctx, []domain.Record{rec})
		require.NoError(t, err)

		got, err := s.Find(ctx, "category", "Sports")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, rec.Name, got[0].Name)
		assert.True(t, rec.Price.Equal(got[0].Price))
	})

	t.Run("reads do not mutate", func(t *testing.T) {
		require.NoError(t, s.Reset(ctx))
		_, err := s.Write(ctx, generator.New(generator.WithSeed(4)).Generate(150))
		require.NoError(t, err)

		before, err := s.Count(ctx)
		require.NoError(t, err)

		_, err = s.Read(ctx, 10, "")
		require.NoError(t, err)
		_, err = s.Read(ctx, 5, "name")
		require.NoError(t, err)
		_, err = s.Aggregate(ctx)
		require.NoError(t, err)

		after, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		stats, err := s.CategoryStats(ctx)
		require.NoError(t, err)
		for i := 1; i < len(stats); i++ {
			assert.GreaterOrEqual(t, stats[i-1].AvgPrice, stats[i].AvgPrice)
		}
	})

	t.Run("search", func(t *testing.T) {
		hits, err := s.SearchSimple(ctx, "product")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), operation.MaxHits)

		hits, err = s.SearchComplex(ctx, operation.Scenario{Phrase: "high quality product", MinPrice: 50, MaxPrice: 800})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), operation.MaxHits)
		for _, h := range hits {
			assert.True(t, h.Price.GreaterThanOrEqual(decimal.NewFromInt(50)))
			assert.True(t, h.Price.LessThanOrEqual(decimal.NewFromInt(800)))
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := s.Find(ctx, "color", "red")
		var ue *apperr.UnsupportedFieldError
		assert.True(t, errors.As(err, &ue))
	})
}
