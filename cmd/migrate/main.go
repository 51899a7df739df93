package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/storage/factory"
	"github.com/DjordjeVuckovic/polybench/pkg/config/env"
)

// migrate creates the products table, collection indexes and index mapping
// for every database in the spec, then exits.
func main() {
	var (
		specPath   = flag.String("spec", "configs/bench.yaml", "Bench spec YAML listing the databases")
		dotEnvPath = flag.String("env", "cmd/migrate/.env", "Path to .env file with connection settings")
		timeout    = flag.Duration("timeout", time.Minute, "Overall timeout")
	)
	flag.Parse()

	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), *dotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	bs, err := spec.LoadFromFile(*specPath)
	if err != nil {
		slog.Error("Failed to load spec", "path", *specPath, "error", err)
		os.Exit(1)
	}

	sc, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage config", "error", err)
		os.Exit(1)
	}
	sc.EnsureSchema = true

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backends, cleanup, err := factory.NewBackends(ctx, sc, bs.Databases)
	if err != nil {
		slog.Error("Migration failed", "error", err)
		cancel()
		os.Exit(1)
	}
	defer cleanup()

	failed := false
	for _, b := range backends.List {
		if err := b.Ping(ctx); err != nil {
			slog.Error("Schema not applied, database unreachable", "backend", b.Name(), "error", err)
			failed = true
			continue
		}
		slog.Info("Schema ready", "backend", b.Name(), "type", backends.Types[b.Name()])
	}
	if failed {
		cleanup()
		cancel()
		os.Exit(1)
	}
}
