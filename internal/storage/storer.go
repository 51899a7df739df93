package storage

import (
	"context"

	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
)

// Backend is one engine under benchmark. Implementations borrow an
// already-connected client and never close it.
type Backend interface {
	Name() string
	// Ping is a trivial liveness call.
	Ping(ctx context.Context) error
	// Reset deletes all benchmark data.
	Reset(ctx context.Context) error
}

type Writer interface {
	Write(ctx context.Context, records []domain.Record) (operation.Measurement, error)
}

type Reader interface {
	// Read runs count queries. An empty field picks between the category and
	// price-range shapes; otherwise each query is an exact match on field.
	Read(ctx context.Context, count int, field string) (operation.Measurement, error)
}

type Aggregator interface {
	Aggregate(ctx context.Context) (operation.Measurement, error)
}

type SimpleSearcher interface {
	FullTextSearchSimple(ctx context.Context, count int) (operation.Measurement, error)
}

type ComplexSearcher interface {
	FullTextSearchComplex(ctx context.Context, count int) (operation.Measurement, error)
}

// Finder is an exact-match lookup used to verify what a backend stores.
type Finder interface {
	Find(ctx context.Context, field string, value any) ([]domain.Record, error)
}

// Adapter implements the whole operation set.
type Adapter interface {
	Backend
	Writer
	Reader
	Aggregator
	SimpleSearcher
	ComplexSearcher
}

type Type string

const (
	PG    Type = "postgres"
	Mongo Type = "mongo"
	ES    Type = "elasticsearch"
	InMem Type = "memory"
)

var Types = []Type{PG, Mongo, ES, InMem}

// StoreKey names the data a backend works on. Backends of one networked
// type share a client and its table, collection or index; every in-memory
// backend owns its data.
func StoreKey(name string, t Type) string {
	if t == InMem {
		return string(InMem) + "/" + name
	}
	return string(t)
}

func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storage type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
