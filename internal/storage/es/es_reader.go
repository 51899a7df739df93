package es

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

const (
	// readSize bounds non-search reads.
	readSize = 10000
	// maxCategoryBuckets covers imported datasets with arbitrary categories.
	maxCategoryBuckets = 10000
)

type CategoryStats struct {
	Category string
	AvgPrice float64
	Count    int64
}

func (e *Storer) Read(ctx context.Context, count int, field string) (operation.Measurement, error) {
	var next func() any
	if field != "" {
		var err error
		if next, err = e.fields.Values(ctx, field, e, e.sampler.Faker()); err != nil {
			return operation.Measurement{}, apperr.WrapQuery(e.name, operation.Read.Label(), err)
		}
	}

	timer := operation.StartTimer(operation.Read)
	for i := 0; i < count; i++ {
		q := time.Now()
		var err error
		switch {
		case next != nil:
			_, err = e.Find(ctx, field, next())
		case e.sampler.ByCategory():
			_, err = e.search(ctx, termQuery(exactPath("category"), operation.ReadCategory), readSize)
		default:
			_, err = e.search(ctx, priceRange(operation.ReadMinPrice.InexactFloat64(), operation.ReadMaxPrice.InexactFloat64()), readSize)
		}
		if err != nil {
			return operation.Measurement{}, apperr.NewQuery(e.name, operation.Read.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (e *Storer) Find(ctx context.Context, field string, value any) ([]domain.Record, error) {
	if err := e.fields.Validate(field); err != nil {
		return nil, err
	}
	return e.search(ctx, termQuery(exactPath(field), value), readSize)
}

func (e *Storer) search(ctx context.Context, query *types.Query, size int) ([]domain.Record, error) {
	res, err := e.client.Search().
		Index(e.indexName).
		Query(query).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	records := make([]domain.Record, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		records = append(records, doc.Record())
	}
	return records, nil
}

func (e *Storer) Aggregate(ctx context.Context) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.Aggregate)
	if _, err := e.CategoryStats(ctx); err != nil {
		return operation.Measurement{}, apperr.NewQuery(e.name, operation.Aggregate.Label(), err)
	}
	return timer.Stop(), nil
}

func (e *Storer) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	res, err := e.client.Search().
		Index(e.indexName).
		Size(0).
		Aggregations(categoryAggregation()).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute aggregation: %w", err)
	}

	terms, ok := res.Aggregations["by_category"].(*types.StringTermsAggregate)
	if !ok {
		return nil, fmt.Errorf("unexpected aggregation type %T", res.Aggregations["by_category"])
	}
	buckets, ok := terms.Buckets.([]types.StringTermsBucket)
	if !ok {
		return nil, fmt.Errorf("unexpected bucket type %T", terms.Buckets)
	}

	stats := make([]CategoryStats, 0, len(buckets))
	for _, b := range buckets {
		st := CategoryStats{
			Category: fmt.Sprint(b.Key),
			Count:    b.DocCount,
		}
		if avg, ok := b.Aggregations["avg_price"].(*types.AvgAggregate); ok && avg.Value != nil {
			st.AvgPrice = float64(*avg.Value)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func categoryAggregation() map[string]types.Aggregations {
	categoryField := exactPath("category")
	priceField := "price"
	bucketSize := maxCategoryBuckets

	return map[string]types.Aggregations{
		"by_category": {
			Terms: &types.TermsAggregation{
				Field: &categoryField,
				Size:  &bucketSize,
				Order: map[string]sortorder.SortOrder{"avg_price": sortorder.Desc},
			},
			Aggregations: map[string]types.Aggregations{
				"avg_price": {Avg: &types.AverageAggregation{Field: &priceField}},
			},
		},
	}
}

func (e *Storer) FullTextSearchSimple(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchSimple)
	for i := 0; i < count; i++ {
		q := time.Now()
		if _, err := e.SearchSimple(ctx, e.sampler.Term()); err != nil {
			return operation.Measurement{}, apperr.NewQuery(e.name, operation.FullTextSearchSimple.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (e *Storer) SearchSimple(ctx context.Context, term string) ([]domain.Record, error) {
	query := &types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:  term,
			Fields: []string{"name^2", "description"},
		},
	}
	return e.search(ctx, query, operation.MaxHits)
}

func (e *Storer) FullTextSearchComplex(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchComplex)
	for i := 0; i < count; i++ {
		q := time.Now()
		if _, err := e.SearchComplex(ctx, e.sampler.Scenario()); err != nil {
			return operation.Measurement{}, apperr.NewQuery(e.name, operation.FullTextSearchComplex.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (e *Storer) SearchComplex(ctx context.Context, sc operation.Scenario) ([]domain.Record, error) {
	query := &types.Query{
		Bool: &types.BoolQuery{
			Must: []types.Query{{
				MultiMatch: &types.MultiMatchQuery{
					Query:  sc.Phrase,
					Fields: []string{"name^3", "description", "category^2"},
				},
			}},
			Filter: []types.Query{*priceRange(sc.MinPrice, sc.MaxPrice)},
		},
	}
	return e.search(ctx, query, operation.MaxHits)
}

func termQuery(path string, value any) *types.Query {
	return &types.Query{
		Term: map[string]types.TermQuery{
			path: {Value: value},
		},
	}
}

func priceRange(lo, hi float64) *types.Query {
	gte := types.Float64(lo)
	lte := types.Float64(hi)
	return &types.Query{
		Range: map[string]types.RangeQuery{
			"price": types.NumberRangeQuery{Gte: &gte, Lte: &lte},
		},
	}
}
