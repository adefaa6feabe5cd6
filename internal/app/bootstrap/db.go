// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by every store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the stores rely on.
//
// The partial unique index on role assignments makes the one-active-role
// rule a database invariant, not just application discipline.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	indexes := map[string][]mongo.IndexModel{
		"roleassignments": {
			{
				Keys: bson.D{{Key: "member_id", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "status", Value: "active"}}).
					SetName("one_active_role_per_member"),
			},
		},
		"trainerclientassignments": {
			{
				Keys: bson.D{
					{Key: "trainer_id", Value: 1},
					{Key: "client_id", Value: 1},
					{Key: "status", Value: 1},
				},
				Options: options.Index().SetName("trainer_client_status"),
			},
		},
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
			{
				Keys:    bson.D{{Key: "member_id", Value: 1}},
				Options: options.Index().SetName("member_id"),
			},
		},
		"workouts": {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "trainer_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		"messages": {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "trainer_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		"checkins": {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		"parqsubmissions": {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}

	logger.Info("schema indexes ensured", zap.Int("collections", len(indexes)))
	return nil
}
