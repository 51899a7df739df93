package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const (
	selectByCategory = `SELECT ` + recordColumns + ` FROM products WHERE category = $1`
	selectByPrice    = `SELECT ` + recordColumns + ` FROM products WHERE price BETWEEN $1 AND $2`

	aggregateByCategory = `
		SELECT category, AVG(price) AS avg_price, COUNT(*) AS count
		FROM products
		GROUP BY category
		ORDER BY avg_price DESC
	`

	searchSimple = `
		SELECT ` + recordColumns + `
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY ts_rank(to_tsvector('english', name || ' ' || description), plainto_tsquery('english', $2)) DESC
		LIMIT $3
	`

	searchComplex = `
		SELECT ` + recordColumns + `
		FROM products
		WHERE to_tsvector('english', name || ' ' || description || ' ' || category) @@ plainto_tsquery('english', $1)
		  AND price BETWEEN $2 AND $3
		ORDER BY ts_rank(to_tsvector('english', name || ' ' || description || ' ' || category), plainto_tsquery('english', $1)) DESC
		LIMIT $4
	`
)

type CategoryStats struct {
	Category string
	AvgPrice decimal.Decimal
	Count    int64
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
			_, err = s.query(ctx, selectByCategory, operation.ReadCategory)
		default:
			_, err = s.query(ctx, selectByPrice, toNumeric(operation.ReadMinPrice), toNumeric(operation.ReadMaxPrice))
		}
		if err != nil {
			return operation.Measurement{}, apperr.NewQuery(s.name, operation.Read.Label(), err)
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

// Find runs an exact-match lookup on field. Only fields known to the value
// provider are accepted.
func (s *Storer) Find(ctx context.Context, field string, value any) ([]domain.Record, error) {
	if err := s.fields.Validate(field); err != nil {
		return nil, err
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", recordColumns, Table, pgx.Identifier{field}.Sanitize())
	return s.query(ctx, sql, value)
}

func (s *Storer) query(ctx context.Context, sql string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return collectRecords(rows)
}

func (s *Storer) Aggregate(ctx context.Context) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.Aggregate)
	if _, err := s.CategoryStats(ctx); err != nil {
		return operation.Measurement{}, apperr.NewQuery(s.name, operation.Aggregate.Label(), err)
	}
	return timer.Stop(), nil
}

// CategoryStats returns average price and record count per category,
// most expensive category first.
func (s *Storer) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	rows, err := s.db.Query(ctx, aggregateByCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to execute aggregation: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CategoryStats, error) {
		var st CategoryStats
		var avg pgtype.Numeric
		if err := row.Scan(&st.Category, &avg, &st.Count); err != nil {
			return CategoryStats{}, fmt.Errorf("failed to scan aggregation row: %w", err)
		}
		st.AvgPrice = fromNumeric(avg)
		return st, nil
	})
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
	return s.query(ctx, searchSimple, "%"+term+"%", term, operation.MaxHits)
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

func (s *Storer) SearchComplex(ctx context.Context, sc operation.Scenario) ([]domain.Record, error) {
	return s.query(ctx, searchComplex,
		sc.Phrase,
		toNumeric(decimal.NewFromFloat(sc.MinPrice)),
		toNumeric(decimal.NewFromFloat(sc.MaxPrice)),
		operation.MaxHits,
	)
}
