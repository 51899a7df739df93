package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/DjordjeVuckovic/polybench/internal/ingest/collector"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/polybench/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceCollector []collector.Result[domain.Record]

func (s sliceCollector) Collect(context.Context) (<-chan collector.Result[domain.Record], error) {
	out := make(chan collector.Result[domain.Record], len(s))
	for _, r := range s {
		out <- r
	}
	close(out)
	return out, nil
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	mem := in_mem.NewInMemStorer("memory")
	fake := storagetest.New("fake")

	c := collector.NewGeneratedCollector(generator.New(generator.WithSeed(1)), 250, 100)
	stats, err := NewPipeline(c, []Target{mem, fake}, WithBatchSize(100)).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 250, stats.Collected)
	assert.Zero(t, stats.Rejected)
	assert.Equal(t, map[string]int{"memory": 250, "fake": 250}, stats.Written)
	assert.Equal(t, 3, fake.Calls(operation.Write))

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(250), n)
}

func TestPipeline_RejectedItems(t *testing.T) {
	recs := generator.New(generator.WithSeed(2)).Generate(2)
	c := sliceCollector{
		{Result: recs[0]},
		{Err: errors.New("bad row")},
		{Result: recs[1]},
	}
	fake := storagetest.New("fake")

	stats, err := NewPipeline(c, []Target{fake}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Collected)
	assert.Equal(t, 1, stats.Rejected)
	assert.Len(t, fake.Written(), 2)
}

func TestPipeline_FailedTargetDoesNotStopOthers(t *testing.T) {
	broken := storagetest.New("broken")
	broken.Fail[operation.Write] = errors.New("disk full")
	ok := storagetest.New("ok")

	c := collector.NewGeneratedCollector(generator.New(generator.WithSeed(3)), 30, 10)
	stats, err := NewPipeline(c, []Target{broken, ok}, WithBatchSize(10)).Run(context.Background())

	var we *apperr.BackendWriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "broken", we.Backend)
	assert.Equal(t, 30, stats.Written["ok"])
	assert.Zero(t, stats.Written["broken"])
}

func TestTargets(t *testing.T) {
	ro, _ := storagetest.NewReadOnly("read-only")
	full := storagetest.New("full")

	targets := Targets([]storage.Backend{ro, full})
	require.Len(t, targets, 1)
	assert.Equal(t, "full", targets[0].Name())
}
