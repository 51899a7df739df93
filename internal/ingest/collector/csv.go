package collector

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/ingest/reader"
)

const defaultWorkers = 10

// CSVCollector maps product CSV rows to records.
type CSVCollector struct {
	reader  *reader.CSVReader
	workers int
}

func NewCSVCollector(r *reader.CSVReader) *CSVCollector {
	return &CSVCollector{reader: r, workers: defaultWorkers}
}

func (cc *CSVCollector) Collect(ctx context.Context) (<-chan Result[domain.Record], error) {
	rows, err := cc.reader.ReadParallel(ctx, cc.workers)
	if err != nil {
		return nil, err
	}

	out := make(chan Result[domain.Record])
	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case row, ok := <-rows:
				if !ok {
					slog.Info("Reader channel closed, stopping collection")
					return
				}

				res := Result[domain.Record]{Err: row.Err}
				if row.Err == nil {
					res.Result, res.Err = reader.MapRecord(row.Record)
				}
				if res.Err != nil {
					slog.Debug("failed to map row to record", "error", res.Err)
				}

				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
