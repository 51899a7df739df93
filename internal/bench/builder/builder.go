package builder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
)

var ErrNotPrepared = errors.New("builder: PrepareArguments must be called before Build")

// Generator produces the write payload.
type Generator interface {
	Generate(count int) []domain.Record
}

type Option func(*Builder)

// WithReadField turns every read into an exact-match lookup on field.
func WithReadField(field string) Option {
	return func(b *Builder) {
		b.readField = field
	}
}

// Builder turns a workload into bound operations, one per backend and kind.
type Builder struct {
	gen       Generator
	readField string

	workload operation.Workload
	records  []domain.Record
	prepared bool
}

func New(gen Generator, opts ...Option) *Builder {
	b := &Builder{gen: gen}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PrepareArguments generates the write payload once. Every other kind keeps
// its bare count.
func (b *Builder) PrepareArguments(w operation.Workload) error {
	b.workload = w
	b.records = nil

	if n, ok := w.Count(operation.Write); ok {
		b.records = b.gen.Generate(n)
		slog.Info("write payload generated", "records", len(b.records))
	}

	b.prepared = true
	return nil
}

// Build binds the prepared workload to every backend in order. Kinds a
// backend does not implement are skipped.
func (b *Builder) Build(backends []storage.Backend) ([]*operation.Bound, error) {
	if !b.prepared {
		return nil, ErrNotPrepared
	}

	var ops []*operation.Bound
	for _, backend := range backends {
		caps := storage.Capabilities(backend)

		for _, entry := range b.workload.Entries() {
			fn, ok := caps[entry.Kind]
			if !ok {
				slog.Debug("operation not supported, skipping", "backend", backend.Name(), "operation", entry.Kind)
				continue
			}
			ops = append(ops, b.bind(backend.Name(), entry, fn))
		}
	}
	return ops, nil
}

func (b *Builder) bind(backend string, entry operation.Entry, fn storage.Func) *operation.Bound {
	args := storage.Args{Count: entry.Count}
	units := entry.Count

	switch entry.Kind {
	case operation.Write:
		args = storage.Args{Records: domain.CloneRecords(b.records)}
		units = len(args.Records)
	case operation.Read:
		args.Field = b.readField
	}

	return operation.NewBound(backend, entry.Kind, units, func(ctx context.Context) (operation.Measurement, error) {
		return fn(ctx, args)
	})
}
