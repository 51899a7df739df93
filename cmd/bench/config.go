package main

import "flag"

type cliConfig struct {
	SpecPath   string
	DotEnvPath string
	Output     string
	Seed       int64
	Parallel   bool
	NoRefresh  bool
	NoSchema   bool
	Verbose    bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "configs/bench.yaml", "Path to bench spec YAML")
	flag.StringVar(&cfg.DotEnvPath, "env", "cmd/bench/.env", "Path to .env file with connection settings")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Seed for generated data and sampled queries (overrides spec)")
	flag.BoolVar(&cfg.Parallel, "parallel", false, "Run backends concurrently (overrides spec)")
	flag.BoolVar(&cfg.NoRefresh, "no-refresh", false, "Keep existing data instead of clearing backends before and after")
	flag.BoolVar(&cfg.NoSchema, "no-schema", false, "Skip creating tables, indexes and mappings")
	flag.BoolVar(&cfg.Verbose, "v", false, "Debug logging")

	flag.Parse()
	return cfg
}
