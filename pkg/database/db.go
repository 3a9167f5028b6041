// Package database is the persistence gateway: one MongoDB client shared by
// the whole process.
//
// Connect pings the deployment and returns any failure to the caller — boot
// aborts on a dead store instead of limping along without one. Health is
// exposed for /healthz and the gRPC health service.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect establishes the MongoDB connection, verifies it with a ping and
// creates the indexes the app relies on.
func Connect(ctx context.Context) error {
	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("database: indexes: %w", err)
	}

	logger.Info("database connected", "db", config.MongoDatabase())
	return nil
}

// DB returns the application database handle. Connect must have succeeded.
func DB() *mongo.Database {
	return db
}

// Collection is shorthand for DB().Collection(name). Before Connect it
// returns nil, so repositories can be constructed without a live store; any
// query on the nil handle still fails loudly.
func Collection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Healthy pings the deployment; false means the store is unreachable.
func Healthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx, nil) == nil
}

// Disconnect closes the client during graceful shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return err
	}

	// Time index on the log collection keeps log queries and TTL cheap.
	_, err = db.Collection("logs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})
	return err
}
