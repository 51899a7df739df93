package storage

import (
	"context"

	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
)

// Args carries the bound argument of one operation: Records for writes,
// Count (and Field for reads) for everything else.
type Args struct {
	Records []domain.Record
	Count   int
	Field   string
}

type Func func(ctx context.Context, args Args) (operation.Measurement, error)

// Capabilities resolves every operation kind the backend implements to a
// callable. Kinds the backend does not implement are absent from the map.
func Capabilities(b Backend) map[operation.Kind]Func {
	caps := make(map[operation.Kind]Func, len(operation.Kinds))

	if w, ok := b.(Writer); ok {
		caps[operation.Write] = func(ctx context.Context, a Args) (operation.Measurement, error) {
			return w.Write(ctx, a.Records)
		}
	}
	if r, ok := b.(Reader); ok {
		caps[operation.Read] = func(ctx context.Context, a Args) (operation.Measurement, error) {
			return r.Read(ctx, a.Count, a.Field)
		}
	}
	if ag, ok := b.(Aggregator); ok {
		caps[operation.Aggregate] = func(ctx context.Context, _ Args) (operation.Measurement, error) {
			return ag.Aggregate(ctx)
		}
	}
	if s, ok := b.(SimpleSearcher); ok {
		caps[operation.FullTextSearchSimple] = func(ctx context.Context, a Args) (operation.Measurement, error) {
			return s.FullTextSearchSimple(ctx, a.Count)
		}
	}
	if s, ok := b.(ComplexSearcher); ok {
		caps[operation.FullTextSearchComplex] = func(ctx context.Context, a Args) (operation.Measurement, error) {
			return s.FullTextSearchComplex(ctx, a.Count)
		}
	}

	return caps
}
