package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup indexes and the text index the complex
// search relies on. Existing indexes are left untouched.
func EnsureIndexes(ctx context.Context, coll *driver.Collection) error {
	models := []driver.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "category", Value: "text"},
			},
			Options: options.Index().
				SetName("products_text_idx").
				SetWeights(bson.D{
					{Key: "name", Value: 3},
					{Key: "description", Value: 1},
					{Key: "category", Value: 2},
				}),
		},
	}

	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	slog.Info("mongo indexes ready", "collection", coll.Name(), "indexes", names)
	return nil
}
