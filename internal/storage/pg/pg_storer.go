package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storer benchmarks PostgreSQL through a borrowed pgx pool.
type Storer struct {
	name    string
	db      *pgxpool.Pool
	sampler *operation.Sampler
	fields  *fieldvalue.Provider
}

func NewStorer(name string, db *pgxpool.Pool, opts ...storage.Option) *Storer {
	o := storage.NewOptions(opts...)
	return &Storer{
		name:    name,
		db:      db,
		sampler: operation.NewSampler(o.Seed),
		fields:  o.Fields,
	}
}

func (s *Storer) Name() string { return s.name }

func (s *Storer) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return apperr.NewConnection(s.name, err)
	}
	return nil
}

func (s *Storer) Reset(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "TRUNCATE TABLE "+Table+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", Table, err)
	}
	return nil
}

func (s *Storer) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+Table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Write bulk inserts records with COPY inside a single transaction.
func (s *Storer) Write(ctx context.Context, records []domain.Record) (operation.Measurement, error) {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			r.Name,
			r.Category,
			toNumeric(r.Price),
			r.Stock,
			r.Description,
			r.Rating,
		}
	}

	timer := operation.StartTimer(operation.Write)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return operation.Measurement{}, apperr.NewWrite(s.name, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{Table},
		[]string{"name", "category", "price", "stock", "description", "rating"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return operation.Measurement{}, apperr.NewWrite(s.name, fmt.Errorf("failed to bulk insert records: %w", err))
	}
	if err := tx.Commit(ctx); err != nil {
		return operation.Measurement{}, apperr.NewWrite(s.name, err)
	}

	m := timer.Stop()
	slog.Debug("pg write completed", "backend", s.name, "rows", n, "elapsed", m.Elapsed)
	return m, nil
}

var (
	_ storage.Adapter = (*Storer)(nil)
	_ storage.Finder  = (*Storer)(nil)
)
