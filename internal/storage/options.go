package storage

import "github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"

// Options are shared by every adapter constructor.
type Options struct {
	// Seed drives query parameter sampling; 0 picks a random seed.
	Seed   int64
	Fields *fieldvalue.Provider
}

type Option func(*Options)

func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func WithFields(p *fieldvalue.Provider) Option {
	return func(o *Options) {
		o.Fields = p
	}
}

func NewOptions(opts ...Option) Options {
	o := Options{Fields: fieldvalue.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
