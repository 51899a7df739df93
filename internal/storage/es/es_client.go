package es

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	Type = storage.ES

	DefaultIndexName = "products"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

// NewClient builds a typed client. No request is sent until first use.
func NewClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return client, nil
}

type HealthChecker struct {
	client *elasticsearch.TypedClient
}

func NewHealthChecker(client *elasticsearch.TypedClient) *HealthChecker {
	return &HealthChecker{client: client}
}

func (hc *HealthChecker) Name() string {
	return string(Type)
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.client == nil {
		return false
	}
	ok, err := hc.client.Ping().Do(ctx)
	return err == nil && ok
}
