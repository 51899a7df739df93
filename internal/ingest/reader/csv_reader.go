package reader

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"sync"
)

type ParallelReaderResult struct {
	Record map[string]string
	Err    error
}

type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

// Read loads every row keyed by the header line.
func (cr *CSVReader) Read() ([]map[string]string, error) {
	csvReader := csv.NewReader(cr.reader)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	var records []map[string]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, toRecord(headers, row))
	}

	return records, nil
}

// ReadParallel streams rows through workerCount goroutines. Row order is not
// preserved. The channel is closed once the input is drained or ctx is done.
func (cr *CSVReader) ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error) {
	out := make(chan ParallelReaderResult)
	csvReader := csv.NewReader(cr.reader)
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	jobs := make(chan []string, workerCount*2)
	var wg sync.WaitGroup

	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case row, ok := <-jobs:
					if !ok {
						return
					}
					res := ParallelReaderResult{Record: toRecord(headers, row)}
					if len(row) != len(headers) {
						res = ParallelReaderResult{Err: io.ErrUnexpectedEOF}
					}
					select {
					case out <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for {
			row, err := csvReader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				slog.Error("Error reading CSV row", "error", err)
				select {
				case out <- ParallelReaderResult{Err: err}:
					continue
				case <-ctx.Done():
					slog.Info("Context cancelled, stopping CSV read...")
					return
				}
			}
			select {
			case jobs <- row:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func toRecord(headers, row []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			record[h] = row[i]
		}
	}
	return record
}
