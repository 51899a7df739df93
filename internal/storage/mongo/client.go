package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	Type = storage.Mongo

	DefaultDatabase   = "benchmark"
	DefaultCollection = "products"
)

type ClientConfig struct {
	URI            string
	ConnectTimeout time.Duration
}

// NewClient configures the client without waiting for a server. The caller
// owns the client and must Disconnect it.
func NewClient(ctx context.Context, cfg ClientConfig) (*driver.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, apperr.NewConnection(string(Type), fmt.Errorf("failed to connect: %w", err))
	}
	return client, nil
}

type HealthChecker struct {
	client *driver.Client
}

func NewHealthChecker(client *driver.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (hc *HealthChecker) Name() string {
	return string(Type)
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	return hc.client != nil && hc.client.Ping(ctx, readpref.Primary()) == nil
}
