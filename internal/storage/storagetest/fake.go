// Package storagetest provides scripted backends for exercising the builder
// and runner without a database.
package storagetest

import (
	"context"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
)

// Fake implements every capability. Each call is counted and reports
// Elapsed as its duration.
type Fake struct {
	name string

	Elapsed time.Duration
	PingErr error
	// Fail makes the given kinds return the mapped error.
	Fail map[operation.Kind]error

	mu      sync.Mutex
	calls   map[operation.Kind]int
	pings   int
	resets  int
	written []domain.Record
	fields  []string
}

func New(name string) *Fake {
	return &Fake{
		name:    name,
		Elapsed: 10 * time.Millisecond,
		Fail:    make(map[operation.Kind]error),
		calls:   make(map[operation.Kind]int),
	}
}

func (f *Fake) Name() string { return f.name }

func (f *Fake) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	if f.PingErr != nil {
		return apperr.NewConnection(f.name, f.PingErr)
	}
	return nil
}

func (f *Fake) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.written = nil
	return nil
}

func (f *Fake) Write(_ context.Context, records []domain.Record) (operation.Measurement, error) {
	if err := f.record(operation.Write); err != nil {
		return operation.Measurement{}, apperr.NewWrite(f.name, err)
	}
	f.mu.Lock()
	f.written = append(f.written, records...)
	f.mu.Unlock()
	return f.measure(operation.Write), nil
}

func (f *Fake) Read(_ context.Context, count int, field string) (operation.Measurement, error) {
	f.mu.Lock()
	f.fields = append(f.fields, field)
	f.mu.Unlock()
	return f.run(operation.Read)
}

func (f *Fake) Aggregate(context.Context) (operation.Measurement, error) {
	return f.run(operation.Aggregate)
}

func (f *Fake) FullTextSearchSimple(context.Context, int) (operation.Measurement, error) {
	return f.run(operation.FullTextSearchSimple)
}

func (f *Fake) FullTextSearchComplex(context.Context, int) (operation.Measurement, error) {
	return f.run(operation.FullTextSearchComplex)
}

func (f *Fake) run(kind operation.Kind) (operation.Measurement, error) {
	if err := f.record(kind); err != nil {
		return operation.Measurement{}, apperr.NewQuery(f.name, kind.Label(), err)
	}
	return f.measure(kind), nil
}

func (f *Fake) record(kind operation.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	return f.Fail[kind]
}

func (f *Fake) measure(kind operation.Kind) operation.Measurement {
	return operation.Measurement{Elapsed: f.Elapsed, Label: kind.Label()}
}

// Calls returns how many times kind was invoked.
func (f *Fake) Calls(kind operation.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

// TotalCalls counts operation invocations; pings and resets are excluded.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *Fake) Pings() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *Fake) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func (f *Fake) Written() []domain.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.CloneRecords(f.written)
}

// ReadFields lists the field argument of every read, in call order.
func (f *Fake) ReadFields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fields...)
}

// ReadOnly exposes only the Reader capability of a Fake.
type ReadOnly struct {
	f *Fake
}

func NewReadOnly(name string) (*ReadOnly, *Fake) {
	f := New(name)
	return &ReadOnly{f: f}, f
}

func (r *ReadOnly) Name() string                    { return r.f.Name() }
func (r *ReadOnly) Ping(ctx context.Context) error  { return r.f.Ping(ctx) }
func (r *ReadOnly) Reset(ctx context.Context) error { return r.f.Reset(ctx) }

func (r *ReadOnly) Read(ctx context.Context, count int, field string) (operation.Measurement, error) {
	return r.f.Read(ctx, count, field)
}

var (
	_ storage.Adapter = (*Fake)(nil)
	_ storage.Reader  = (*ReadOnly)(nil)
)
