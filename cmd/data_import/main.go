package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/DjordjeVuckovic/polybench/internal/generator"
	"github.com/DjordjeVuckovic/polybench/internal/ingest"
	"github.com/DjordjeVuckovic/polybench/internal/ingest/collector"
	"github.com/DjordjeVuckovic/polybench/internal/ingest/reader"
	"github.com/DjordjeVuckovic/polybench/internal/storage/factory"
	"github.com/DjordjeVuckovic/polybench/pkg/config/env"
)

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Import failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg DataImportConfig) error {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), cfg.DotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	bs, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		return err
	}

	sc, err := factory.LoadEnv()
	if err != nil {
		return err
	}
	sc.EnsureSchema = !cfg.NoSchema

	backends, cleanup, err := factory.NewBackends(ctx, sc, bs.Databases)
	if err != nil {
		return err
	}
	defer cleanup()

	c, closeSource, err := newCollector(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	stats, err := ingest.NewPipeline(c, ingest.Targets(backends.List), ingest.WithBatchSize(cfg.BatchSize)).Run(ctx)
	for name, n := range stats.Written {
		slog.Info("Records imported", "backend", name, "records", n)
	}
	return err
}

func newCollector(cfg DataImportConfig) (collector.Collector[domain.Record], func(), error) {
	if cfg.DatasetPath == "" {
		slog.Info("Importing generated records", "count", cfg.Count, "seed", cfg.Seed)
		gen := generator.New(generator.WithSeed(cfg.Seed))
		return collector.NewGeneratedCollector(gen, cfg.Count, cfg.BatchSize), func() {}, nil
	}

	f, err := os.Open(cfg.DatasetPath)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Importing dataset", "path", cfg.DatasetPath)
	return collector.NewCSVCollector(reader.NewCSVReader(f)), func() { _ = f.Close() }, nil
}
