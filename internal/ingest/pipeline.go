package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/ingest/collector"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
)

const DefaultBatchSize = 1000

// Target is a backend that accepts writes.
type Target interface {
	storage.Backend
	storage.Writer
}

type Stats struct {
	Collected int
	// Rejected counts items the collector could not produce.
	Rejected int
	Written  map[string]int
	Duration time.Duration
}

type Pipeline struct {
	collector collector.Collector[domain.Record]
	targets   []Target
	batchSize int
}

type Option func(*Pipeline)

func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

// Targets keeps the backends that implement Writer.
func Targets(backends []storage.Backend) []Target {
	var out []Target
	for _, b := range backends {
		if t, ok := b.(Target); ok {
			out = append(out, t)
			continue
		}
		slog.Warn("backend does not accept writes, skipping", "backend", b.Name())
	}
	return out
}

func NewPipeline(c collector.Collector[domain.Record], targets []Target, opts ...Option) *Pipeline {
	p := &Pipeline{
		collector: c,
		targets:   targets,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run writes every collected record to every target in batches. A failed
// batch is logged and the import goes on; the failures are returned joined.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats := Stats{Written: make(map[string]int, len(p.targets))}

	results, err := p.collector.Collect(ctx)
	if err != nil {
		return stats, err
	}

	var errs []error
	batch := make([]domain.Record, 0, p.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, t := range p.targets {
			if _, err := t.Write(ctx, batch); err != nil {
				slog.Error("Error saving batch", "backend", t.Name(), "error", err, "count", len(batch))
				errs = append(errs, err)
				continue
			}
			stats.Written[t.Name()] += len(batch)
		}
		slog.Debug("Batch saved", "count", len(batch), "collected", stats.Collected)
		batch = batch[:0]
	}

loop:
	for {
		select {
		case <-ctx.Done():
			slog.Info("Pipeline context cancelled, stopping collection")
			errs = append(errs, ctx.Err())
			break loop
		case res, ok := <-results:
			if !ok {
				flush()
				break loop
			}
			if res.Err != nil {
				stats.Rejected++
				continue
			}
			stats.Collected++
			batch = append(batch, res.Result)
			if len(batch) >= p.batchSize {
				flush()
			}
		}
	}

	stats.Duration = time.Since(start)
	slog.Info("Import completed",
		"collected", stats.Collected,
		"rejected", stats.Rejected,
		"duration", stats.Duration)

	return stats, errors.Join(errs...)
}
