package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Storer benchmarks MongoDB through a borrowed collection handle.
type Storer struct {
	name    string
	coll    *driver.Collection
	sampler *operation.Sampler
	fields  *fieldvalue.Provider
}

func NewStorer(name string, coll *driver.Collection, opts ...storage.Option) *Storer {
	o := storage.NewOptions(opts...)
	return &Storer{
		name:    name,
		coll:    coll,
		sampler: operation.NewSampler(o.Seed),
		fields:  o.Fields,
	}
}

func (s *Storer) Name() string { return s.name }

func (s *Storer) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return apperr.NewConnection(s.name, err)
	}
	return nil
}

func (s *Storer) Reset(ctx context.Context) error {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.coll.Name(), err)
	}
	slog.Debug("mongo collection cleared", "backend", s.name, "deleted", res.DeletedCount)
	return nil
}

func (s *Storer) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

func (s *Storer) Write(ctx context.Context, records []domain.Record) (operation.Measurement, error) {
	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = NewDocument(r)
	}

	timer := operation.StartTimer(operation.Write)
	if len(docs) > 0 {
		if _, err := s.coll.InsertMany(ctx, docs); err != nil {
			return operation.Measurement{}, apperr.NewWrite(s.name, fmt.Errorf("failed to insert documents: %w", err))
		}
	}
	return timer.Stop(), nil
}

func (s *Storer) Read(ctx context.Context, count int, field string) (operation.Measurement, error) {
	var next func() any
	if field != "" {
		var err error
		if next, err = s.fields.Values(ctx, field, s, s.sampler.Faker()); err != nil {
			return operation.Measurement{}, apperr.WrapQuery(s.name, operation.Read.Label(), err)
		}
	}

	timer := operation.StartTimer(operation.Read)
	for i := 0; i < count; i++ {
		q := time.Now()
		var err error
		switch {
		case next != nil:
			_, err = s.Find(ctx, field, next())
		case s.sampler.ByCategory():
			_, err = s.find(ctx, bson.D{{Key: "category", Value: operation.ReadCategory}}, nil)
		default:
			_, err = s.find(ctx, bson.D{{Key: "price", Value: bson.D{
				{Key: "$gte", Value: operation.ReadMinPrice.InexactFloat64()},
				{Key: "$lte", Value: operation.ReadMaxPrice.InexactFloat64()},
			}}}, nil)
		}
		if err != nil {
			return operation.Measurement{}, apperr.NewQuery(s.name, operation.Read.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (s *Storer) Find(ctx context.Context, field string, value any) ([]domain.Record, error) {
	if err := s.fields.Validate(field); err != nil {
		return nil, err
	}
	return s.find(ctx, bson.D{{Key: field, Value: value}}, nil)
}

// find drains the cursor before returning.
func (s *Storer) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]domain.Record, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find: %w", err)
	}

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	records := make([]domain.Record, len(docs))
	for i, d := range docs {
		records[i] = d.Record()
	}
	return records, nil
}

func (s *Storer) Aggregate(ctx context.Context) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.Aggregate)
	if _, err := s.CategoryStats(ctx); err != nil {
		return operation.Measurement{}, apperr.NewQuery(s.name, operation.Aggregate.Label(), err)
	}
	return timer.Stop(), nil
}

func (s *Storer) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	pipeline := driver.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "avg_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avg_price", Value: -1}}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to execute aggregation: %w", err)
	}

	var stats []CategoryStats
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}
	return stats, nil
}

func (s *Storer) FullTextSearchSimple(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchSimple)
	for i := 0; i < count; i++ {
		q := time.Now()
		if _, err := s.SearchSimple(ctx, s.sampler.Term()); err != nil {
			return operation.Measurement{}, apperr.NewQuery(s.name, operation.FullTextSearchSimple.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (s *Storer) SearchSimple(ctx context.Context, term string) ([]domain.Record, error) {
	pattern := bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(term)},
		{Key: "$options", Value: "i"},
	}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "description", Value: pattern}},
	}}}
	return s.find(ctx, filter, options.Find().SetLimit(operation.MaxHits))
}

func (s *Storer) FullTextSearchComplex(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchComplex)
	for i := 0; i < count; i++ {
		q := time.Now()
		if _, err := s.SearchComplex(ctx, s.sampler.Scenario()); err != nil {
			return operation.Measurement{}, apperr.NewQuery(s.name, operation.FullTextSearchComplex.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

// SearchComplex needs the text index created by EnsureIndexes.
func (s *Storer) SearchComplex(ctx context.Context, sc operation.Scenario) ([]domain.Record, error) {
	filter := bson.D{
		{Key: "$text", Value: bson.D{{Key: "$search", Value: sc.Phrase}}},
		{Key: "price", Value: bson.D{
			{Key: "$gte", Value: sc.MinPrice},
			{Key: "$lte", Value: sc.MaxPrice},
		}},
	}
	score := bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}
	opts := options.Find().
		SetProjection(score).
		SetSort(score).
		SetLimit(operation.MaxHits)

	return s.find(ctx, filter, opts)
}

var (
	_ storage.Adapter = (*Storer)(nil)
	_ storage.Finder  = (*Storer)(nil)
)
