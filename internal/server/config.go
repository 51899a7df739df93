package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/polybench/pkg/config/env"
	"github.com/DjordjeVuckovic/polybench/pkg/utils"
	cenv "github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	UseHttp2    bool     `env:"USE_HTTP2"`
	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func LoadConfig(dotEnvPath string) (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), dotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	cfg, err := cenv.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	for i, origin := range cfg.CorsOrigins {
		cfg.CorsOrigins[i] = strings.TrimSpace(origin)
	}
	cfg.CorsOrigins = utils.RemoveEmptyStrings(cfg.CorsOrigins)
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	return &cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
