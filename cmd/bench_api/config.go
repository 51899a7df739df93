package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/storage/factory"
	"github.com/caarlos0/env/v11"
)

type appEnv struct {
	SpecPath string `env:"BENCH_SPEC_PATH" envDefault:"configs/bench.yaml"`
}

type AppConfig struct {
	SpecPath      string
	StorageConfig *factory.StorageConfig
}

// LoadAppConfig reads the environment; the .env file is loaded by the server
// config beforehand.
func LoadAppConfig() (*AppConfig, error) {
	e, err := env.ParseAs[appEnv]()
	if err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}

	sc, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	return &AppConfig{SpecPath: e.SpecPath, StorageConfig: sc}, nil
}
