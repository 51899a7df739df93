package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// EnsureIndex creates indexName with the product mapping unless it exists.
func EnsureIndex(ctx context.Context, client *elasticsearch.TypedClient, indexName string) error {
	exists, err := client.Indices.Exists(indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"name":        textWithKeyword(),
			"category":    textWithKeyword(),
			"price":       types.NewDoubleNumberProperty(),
			"stock":       types.NewIntegerNumberProperty(),
			"description": types.NewTextProperty(),
			"rating":      types.NewFloatNumberProperty(),
		},
	}

	createRes, err := client.Indices.Create(indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", indexName)
	return nil
}

func textWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
