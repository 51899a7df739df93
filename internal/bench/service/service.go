package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/polybench/internal/bench/builder"
	"github.com/DjordjeVuckovic/polybench/internal/bench/report"
	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
)

// Service runs the configured benchmark against a fixed set of backends.
// Runs are serialized because they share the backends' data.
type Service struct {
	spec     *spec.BenchSpec
	backends []storage.Backend
	infos    map[string]report.BackendInfo
	stores   map[string]string

	mu sync.Mutex
}

func New(bs *spec.BenchSpec, backends []storage.Backend, types map[string]storage.Type) *Service {
	infos := make(map[string]report.BackendInfo, len(types))
	stores := make(map[string]string, len(types))
	for name, t := range types {
		infos[name] = report.BackendInfo{Type: string(t)}
		stores[name] = storage.StoreKey(name, t)
	}
	return &Service{spec: bs, backends: backends, infos: infos, stores: stores}
}

// Run generates the payload, binds one operation per backend and kind, and
// executes them. The report is returned even when the connection check fails.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.spec.Workload()
	if err != nil {
		return nil, err
	}

	b := builder.New(generator.New(generator.WithSeed(s.spec.Seed)), builder.WithReadField(s.spec.ReadField))
	if err := b.PrepareArguments(w); err != nil {
		return nil, fmt.Errorf("prepare arguments: %w", err)
	}
	ops, err := b.Build(s.backends)
	if err != nil {
		return nil, fmt.Errorf("build operations: %w", err)
	}

	slog.Info("starting benchmark", "backends", len(s.backends), "operations", len(ops))

	r := runner.New(runner.Config{
		Refresh:  s.spec.RefreshEnabled(),
		Parallel: s.spec.Parallel,
		Stores:   s.stores,
	})
	rr, err := r.Run(ctx, s.backends, ops)
	return report.Generate(rr, s.infos), err
}
