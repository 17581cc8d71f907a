package database

import (
	"context"
	"fmt"
	"time"

	"github.com/zenith-gallery/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a MongoDB client, verifies connectivity and ensures the
// catalog indexes exist.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureIndexes creates the unique name indexes on the label collections and
// the device class index on images.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, coll := range []string{models.CollectionTags, models.CollectionColors} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "nombre", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create %s index: %w", coll, err)
		}
	}
	_, err := db.Collection(models.CollectionImages).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tipo", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create %s index: %w", models.CollectionImages, err)
	}
	return nil
}
