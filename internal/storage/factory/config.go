package factory

import (
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/pkg/utils"
	"github.com/caarlos0/env/v11"
)

type PgConfig struct {
	ConnStr  string `env:"PG_CONNECTION_STRING"`
	MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI"`
	Database       string        `env:"MONGO_DATABASE" envDefault:"benchmark"`
	Collection     string        `env:"MONGO_COLLECTION" envDefault:"products"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

type EsConfig struct {
	Addresses []string `env:"ES_ADDRESSES" envSeparator:","`
	IndexName string   `env:"ES_INDEX_NAME" envDefault:"products"`
	Username  string   `env:"ES_USERNAME"`
	Password  string   `env:"ES_PASSWORD"`
}

type StorageConfig struct {
	Pg    PgConfig
	Mongo MongoConfig
	Es    EsConfig
	// EnsureSchema creates tables, indexes and mappings for every reachable
	// database.
	EnsureSchema bool `env:"ENSURE_SCHEMA" envDefault:"true"`
}

func LoadEnv() (*StorageConfig, error) {
	cfg, err := env.ParseAs[StorageConfig]()
	if err != nil {
		return nil, apperr.NewValidationWrap("parse storage environment", err)
	}

	for i, a := range cfg.Es.Addresses {
		cfg.Es.Addresses[i] = strings.TrimSpace(a)
	}
	cfg.Es.Addresses = utils.RemoveEmptyStrings(cfg.Es.Addresses)

	return &cfg, nil
}

// Validate checks that every storage type in use has its connection settings.
func (c *StorageConfig) Validate(types ...storage.Type) error {
	for _, t := range types {
		switch t {
		case storage.PG:
			if c.Pg.ConnStr == "" {
				return apperr.NewValidation("PG_CONNECTION_STRING is not set")
			}
		case storage.Mongo:
			if c.Mongo.URI == "" {
				return apperr.NewValidation("MONGO_URI is not set")
			}
		case storage.ES:
			if len(c.Es.Addresses) == 0 {
				return apperr.NewValidation("ES_ADDRESSES is not set")
			}
		case storage.InMem:
		default:
			return apperr.NewValidation(fmt.Sprintf(string(storage.ErrUnsupportedStorer), t))
		}
	}
	return nil
}
