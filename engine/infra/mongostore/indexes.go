package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// uniqueStringIndex builds a unique index on field, partial over
// string values so documents without the field stay unconstrained.
func uniqueStringIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{
				{Key: field, Value: bson.D{{Key: "$type", Value: "string"}}},
			}),
	}
}

// EnsureIndexes creates the unique indexes both entity collections
// rely on. Runs once at startup; index creation is idempotent on the
// server side. The name and importHash indexes are the ultimate guard
// behind the unique-violation translation and the import pre-check.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, collection := range []string{"teams", "templates"} {
		_, err := s.db.Collection(collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
			uniqueStringIndex("name"),
			uniqueStringIndex("importHash"),
		})
		if err != nil {
			return fmt.Errorf("creating indexes for %s: %w", collection, err)
		}
	}
	return nil
}
