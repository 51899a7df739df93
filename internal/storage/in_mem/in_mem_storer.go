package in_mem

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/shopspring/decimal"
)

// InMemStorer is a process-local backend.
type InMemStorer struct {
	name    string
	sampler *operation.Sampler
	fields  *fieldvalue.Provider

	storageLock sync.RWMutex
	storage     []domain.Record
}

func NewInMemStorer(name string, opts ...storage.Option) *InMemStorer {
	o := storage.NewOptions(opts...)
	return &InMemStorer{
		name:    name,
		sampler: operation.NewSampler(o.Seed),
		fields:  o.Fields,
	}
}

func (s *InMemStorer) Name() string { return s.name }

func (s *InMemStorer) Ping(context.Context) error { return nil }

func (s *InMemStorer) Reset(context.Context) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage = nil
	return nil
}

func (s *InMemStorer) Count(context.Context) (int64, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return int64(len(s.storage)), nil
}

func (s *InMemStorer) Write(ctx context.Context, records []domain.Record) (operation.Measurement, error) {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return operation.Measurement{}, apperr.NewWrite(s.name, err)
		}
	}

	timer := operation.StartTimer(operation.Write)
	s.storageLock.Lock()
	s.storage = append(s.storage, domain.CloneRecords(records)...)
	s.storageLock.Unlock()
	m := timer.Stop()

	slog.Debug("in-memory write completed", "backend", s.name, "records", len(records))
	return m, nil
}

func (s *InMemStorer) Read(ctx context.Context, count int, field string) (operation.Measurement, error) {
	if field != "" {
		next, err := s.fields.Values(ctx, field, s, s.sampler.Faker())
		if err != nil {
			return operation.Measurement{}, apperr.WrapQuery(s.name, operation.Read.Label(), err)
		}
		timer := operation.StartTimer(operation.Read)
		for i := 0; i < count; i++ {
			q := time.Now()
			if _, err := s.Find(ctx, field, next()); err != nil {
				return operation.Measurement{}, apperr.NewQuery(s.name, operation.Read.Label(), err)
			}
			timer.Observe(q)
		}
		return timer.Stop(), nil
	}

	timer := operation.StartTimer(operation.Read)
	for i := 0; i < count; i++ {
		q := time.Now()
		if s.sampler.ByCategory() {
			s.filter(func(r domain.Record) bool { return r.Category == operation.ReadCategory })
		} else {
			s.filter(func(r domain.Record) bool {
				return r.Price.GreaterThanOrEqual(operation.ReadMinPrice) && r.Price.LessThanOrEqual(operation.ReadMaxPrice)
			})
		}
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

// Find returns every record whose field equals value.
func (s *InMemStorer) Find(_ context.Context, field string, value any) ([]domain.Record, error) {
	if err := s.fields.Validate(field); err != nil {
		return nil, err
	}
	var match func(domain.Record) bool
	switch field {
	case "category":
		match = func(r domain.Record) bool { return r.Category == value }
	case "name":
		match = func(r domain.Record) bool { return r.Name == value }
	case "stock":
		match = func(r domain.Record) bool { return r.Stock == value }
	default:
		return nil, apperr.NewUnsupportedField(field)
	}
	return s.filter(match), nil
}

func (s *InMemStorer) filter(match func(domain.Record) bool) []domain.Record {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	var out []domain.Record
	for _, r := range s.storage {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

type categoryStats struct {
	Category string
	AvgPrice decimal.Decimal
	Count    int64
}

func (s *InMemStorer) Aggregate(ctx context.Context) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.Aggregate)
	s.aggregate()
	return timer.Stop(), nil
}

func (s *InMemStorer) aggregate() []categoryStats {
	s.storageLock.RLock()
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, r := range s.storage {
		sums[r.Category] = sums[r.Category].Add(r.Price)
		counts[r.Category]++
	}
	s.storageLock.RUnlock()

	stats := make([]categoryStats, 0, len(sums))
	for c, sum := range sums {
		stats = append(stats, categoryStats{
			Category: c,
			AvgPrice: sum.Div(decimal.NewFromInt(counts[c])),
			Count:    counts[c],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AvgPrice.GreaterThan(stats[j].AvgPrice)
	})
	return stats
}

func (s *InMemStorer) FullTextSearchSimple(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchSimple)
	for i := 0; i < count; i++ {
		q := time.Now()
		s.search([]string{s.sampler.Term()}, func(r domain.Record) string {
			return r.Name + " " + r.Description
		}, nil)
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

func (s *InMemStorer) FullTextSearchComplex(ctx context.Context, count int) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.FullTextSearchComplex)
	for i := 0; i < count; i++ {
		q := time.Now()
		sc := s.sampler.Scenario()
		minPrice := decimal.NewFromFloat(sc.MinPrice)
		maxPrice := decimal.NewFromFloat(sc.MaxPrice)
		s.search(strings.Fields(sc.Phrase), func(r domain.Record) string {
			return r.Name + " " + r.Description + " " + r.Category
		}, func(r domain.Record) bool {
			return r.Price.GreaterThanOrEqual(minPrice) && r.Price.LessThanOrEqual(maxPrice)
		})
		timer.Observe(q)
	}
	return timer.Stop(), nil
}

// search ranks records by the number of term occurrences in text and
// returns at most operation.MaxHits of them.
func (s *InMemStorer) search(terms []string, text func(domain.Record) string, keep func(domain.Record) bool) []domain.Record {
	type hit struct {
		rec   domain.Record
		score int
	}

	s.storageLock.RLock()
	var hits []hit
	for _, r := range s.storage {
		if keep != nil && !keep(r) {
			continue
		}
		body := strings.ToLower(text(r))
		score := 0
		for _, t := range terms {
			score += strings.Count(body, strings.ToLower(t))
		}
		if score > 0 {
			hits = append(hits, hit{rec: r, score: score})
		}
	}
	s.storageLock.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > operation.MaxHits {
		hits = hits[:operation.MaxHits]
	}

	out := make([]domain.Record, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

func (s *InMemStorer) String() string {
	return fmt.Sprintf("in_mem(%s)", s.name)
}

var (
	_ storage.Adapter = (*InMemStorer)(nil)
	_ storage.Finder  = (*InMemStorer)(nil)
)
