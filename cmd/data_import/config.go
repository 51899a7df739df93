package main

import (
	"flag"

	"github.com/DjordjeVuckovic/polybench/internal/ingest"
)

type DataImportConfig struct {
	SpecPath    string
	DotEnvPath  string
	DatasetPath string
	Count       int
	BatchSize   int
	Seed        int64
	NoSchema    bool
}

func parseFlags() DataImportConfig {
	cfg := DataImportConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "configs/bench.yaml", "Bench spec YAML; its databases_to_test are the import targets")
	flag.StringVar(&cfg.DotEnvPath, "env", "cmd/data_import/.env", "Path to .env file with connection settings")
	flag.StringVar(&cfg.DatasetPath, "dataset", "", "Product CSV to import; generated records are used when empty")
	flag.IntVar(&cfg.Count, "count", 100000, "Number of generated records")
	flag.IntVar(&cfg.BatchSize, "batch", ingest.DefaultBatchSize, "Records per write")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Seed for generated records")
	flag.BoolVar(&cfg.NoSchema, "no-schema", false, "Skip creating tables, indexes and mappings")

	flag.Parse()
	return cfg
}
