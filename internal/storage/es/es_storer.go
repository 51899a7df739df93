package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Storer benchmarks Elasticsearch through a borrowed typed client.
type Storer struct {
	name      string
	client    *elasticsearch.TypedClient
	indexName string
	sampler   *operation.Sampler
	fields    *fieldvalue.Provider
}

func NewStorer(name string, client *elasticsearch.TypedClient, indexName string, opts ...storage.Option) *Storer {
	o := storage.NewOptions(opts...)
	if indexName == "" {
		indexName = DefaultIndexName
	}
	return &Storer{
		name:      name,
		client:    client,
		indexName: indexName,
		sampler:   operation.NewSampler(o.Seed),
		fields:    o.Fields,
	}
}

func (e *Storer) Name() string { return e.name }

func (e *Storer) Ping(ctx context.Context) error {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		return apperr.NewConnection(e.name, err)
	}
	if !ok {
		return apperr.NewConnection(e.name, fmt.Errorf("cluster did not answer ping"))
	}
	return nil
}

// Reset removes every document. A missing index counts as already empty.
func (e *Storer) Reset(ctx context.Context) error {
	_, err := e.client.DeleteByQuery(e.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Refresh(true).
		Do(ctx)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear index %s: %w", e.indexName, err)
	}
	return nil
}

func (e *Storer) Count(ctx context.Context) (int64, error) {
	res, err := e.client.Count().Index(e.indexName).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return res.Count, nil
}

// Write indexes records with the bulk indexer and refreshes the index so
// they are searchable once Write returns. Any rejected item fails the write.
func (e *Storer) Write(ctx context.Context, records []domain.Record) (operation.Measurement, error) {
	timer := operation.StartTimer(operation.Write)
	if len(records) == 0 {
		return timer.Stop(), nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      e.indexName,
		Client:     e.client,
		NumWorkers: 4,
		FlushBytes: 5e+6,
		Refresh:    "wait_for",
	})
	if err != nil {
		return operation.Measurement{}, apperr.NewWrite(e.name, fmt.Errorf("failed to create bulk indexer: %w", err))
	}

	var failed atomic.Int64
	var causeOnce sync.Once
	var cause error

	for _, r := range records {
		doc := NewDocument(r)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			_ = bi.Close(ctx)
			return operation.Measurement{}, apperr.NewWrite(e.name, fmt.Errorf("failed to marshal document: %w", err))
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(docBytes),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed.Add(1)
					if err == nil {
						err = fmt.Errorf("%s: %s", res.Error.Type, res.Error.Reason)
					}
					causeOnce.Do(func() { cause = err })
				},
			},
		)
		if err != nil {
			_ = bi.Close(ctx)
			return operation.Measurement{}, apperr.NewWrite(e.name, fmt.Errorf("failed to add document: %w", err))
		}
	}

	if err := bi.Close(ctx); err != nil {
		return operation.Measurement{}, apperr.NewWrite(e.name, fmt.Errorf("failed to close bulk indexer: %w", err))
	}

	if n := failed.Load(); n > 0 {
		return operation.Measurement{}, apperr.NewWrite(e.name, fmt.Errorf("%d of %d documents rejected: %w", n, len(records), cause))
	}

	m := timer.Stop()
	stats := bi.Stats()
	slog.Debug("es bulk write completed", "backend", e.name, "indexed", stats.NumIndexed, "index", e.indexName)
	return m, nil
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}

var (
	_ storage.Adapter = (*Storer)(nil)
	_ storage.Finder  = (*Storer)(nil)
)
