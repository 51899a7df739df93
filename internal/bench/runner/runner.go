package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrConnectionCheckFailed = errors.New("connection check failed")

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// Run checks every backend, then executes ops in build order. Operation
// failures become warnings; only a failed connection check fails the run,
// in which case no operation is invoked.
func (r *Runner) Run(ctx context.Context, backends []storage.Backend, ops []*operation.Bound) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := slog.With("run_id", report.RunID)

	if err := r.checkConnections(ctx, backends); err != nil {
		report.Status = ConnectionCheckFailed
		report.Warnings = connectionWarnings(err)
		metrics.ObserveRun(string(report.Status))
		log.Error("connection check failed, nothing executed", "error", err)
		return report, fmt.Errorf("%w: %w", ErrConnectionCheckFailed, err)
	}

	if r.config.Refresh {
		r.reset(ctx, backends, "before")
	}

	started := time.Now()
	outcomes := r.execute(ctx, ops)

	if r.config.Refresh {
		r.reset(ctx, backends, "after")
	}

	report.Status = Completed
	report.Results = make([]Result, 0, len(ops))
	for _, o := range outcomes {
		if o.warning != "" {
			report.Warnings = append(report.Warnings, o.warning)
			continue
		}
		report.Results = append(report.Results, o.result)
	}
	metrics.ObserveRun(string(report.Status))

	log.Info("benchmark completed",
		"operations", len(ops),
		"results", len(report.Results),
		"warnings", len(report.Warnings),
		"elapsed", time.Since(started))
	return report, nil
}

func (r *Runner) checkConnections(ctx context.Context, backends []storage.Backend) error {
	var errs []error
	for _, b := range backends {
		if err := b.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func connectionWarnings(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// reset is best effort: a backend that cannot be cleared is logged and the
// run goes on.
func (r *Runner) reset(ctx context.Context, backends []storage.Backend, phase string) {
	for _, b := range backends {
		if err := b.Reset(ctx); err != nil {
			slog.Warn("reset failed", "backend", b.Name(), "phase", phase, "error", err)
		}
	}
}

type outcome struct {
	result  Result
	warning string
}

func (r *Runner) execute(ctx context.Context, ops []*operation.Bound) []outcome {
	outcomes := make([]outcome, len(ops))

	if !r.config.Parallel {
		for i, op := range ops {
			outcomes[i] = runOne(ctx, op)
		}
		return outcomes
	}

	// One goroutine per store; each walks its own operations in order and
	// writes to disjoint slots.
	byStore := make(map[string][]int)
	var order []string
	for i, op := range ops {
		store := r.config.store(op.Backend)
		if _, ok := byStore[store]; !ok {
			order = append(order, store)
		}
		byStore[store] = append(byStore[store], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, store := range order {
		idx := byStore[store]
		g.Go(func() error {
			for _, i := range idx {
				outcomes[i] = runOne(gctx, ops[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func runOne(ctx context.Context, op *operation.Bound) outcome {
	label := op.Kind.Label()

	if op.Units <= 0 {
		metrics.ObserveFailure(op.Backend, label)
		return outcome{warning: failure(op, fmt.Errorf("zero unit count"))}
	}

	slog.Info("running operation", "backend", op.Backend, "operation", op.Kind, "units", op.Units)
	m, err := op.Invoke(ctx)
	if err != nil {
		metrics.ObserveFailure(op.Backend, label)
		slog.Warn("operation failed", "backend", op.Backend, "operation", op.Kind, "error", err)
		return outcome{warning: failure(op, err)}
	}

	if m.Label != "" {
		label = m.Label
	}
	metrics.ObserveOperation(op.Backend, label, m.Elapsed, op.Units)

	return outcome{result: newResult(op.Backend, label, op.Units, m)}
}

func failure(op *operation.Bound, err error) string {
	return fmt.Sprintf("%s %s benchmark failed: %v", op.Backend, op.Kind, err)
}
