package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/DjordjeVuckovic/polybench/internal/bench/report"
	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/DjordjeVuckovic/polybench/internal/bench/service"
	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/internal/storage/factory"
	"github.com/DjordjeVuckovic/polybench/pkg/config/env"
)

func main() {
	cfg := parseFlags()
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Benchmark failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliConfig) error {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), cfg.DotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	bs, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		return err
	}
	applyOverrides(bs, cfg)

	sc, err := factory.LoadEnv()
	if err != nil {
		return err
	}
	if cfg.NoSchema {
		sc.EnsureSchema = false
	}

	backends, cleanup, err := factory.NewBackends(ctx, sc, bs.Databases, storage.WithSeed(bs.Seed))
	if err != nil {
		return err
	}
	defer cleanup()

	rpt, err := service.New(bs, backends.List, backends.Types).Run(ctx)
	if rpt != nil {
		if outErr := outputReport(rpt, cfg.Output); outErr != nil {
			return errors.Join(err, outErr)
		}
	}
	if errors.Is(err, runner.ErrConnectionCheckFailed) {
		slog.Error("Backends unreachable, nothing was executed")
	}
	return err
}

func applyOverrides(bs *spec.BenchSpec, cfg cliConfig) {
	if cfg.Seed != 0 {
		bs.Seed = cfg.Seed
	}
	if cfg.Parallel {
		bs.Parallel = true
	}
	if cfg.NoRefresh {
		refresh := false
		bs.Refresh = &refresh
	}
}

func outputReport(rpt *report.Report, outputPath string) error {
	report.WriteTable(rpt, os.Stdout)

	if outputPath != "" {
		if err := report.WriteJSON(rpt, outputPath); err != nil {
			return err
		}
		slog.Info("Report written", "path", outputPath)
	}
	return nil
}
