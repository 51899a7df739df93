package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/service"
	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/router"
	"github.com/DjordjeVuckovic/polybench/internal/server"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

const connectTimeout = 30 * time.Second

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig("cmd/bench_api/.env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appCfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	bs, err := spec.LoadFromFile(appCfg.SpecPath)
	if err != nil {
		slog.Error("Failed to load spec", "path", appCfg.SpecPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	backends, cleanup, err := factory.NewBackends(ctx, appCfg.StorageConfig, bs.Databases, storage.WithSeed(bs.Seed))
	cancel()
	if err != nil {
		slog.Error("Failed to create backends", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	s := server.New(sCfg, backends.HealthChecks).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "polybench API is running")
	})

	router.NewBenchmarkRouter(s.Echo, service.New(bs, backends.List, backends.Types)).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		cleanup()
		os.Exit(1)
	}
}
