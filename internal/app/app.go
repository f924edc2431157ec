package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hosterlink/hosterlink-api/internal/config"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	Client *mongo.Client
	DB     *mongo.Database
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		client  *mongo.Client
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		client, err = connect(ctx, cfg.MongoURI)
		cancel()
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	db := client.Database(cfg.MongoDatabase)
	if err := ensureIndexes(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &App{
		Config: cfg,
		Client: client,
		DB:     db,
	}, nil
}

func (a *App) Close() {
	if a.Client != nil {
		if err := a.Client.Disconnect(context.Background()); err != nil {
			utils.Logger.WithError(err).Warn("Error disconnecting from database")
			return
		}
		utils.Logger.Info("Database connection closed.")
	}
}

func (a *App) Ping(ctx context.Context) error {
	return a.Client.Ping(ctx, nil)
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// ensureIndexes creates the indexes the invariants depend on. The unique
// email index is what makes registration race-free: two concurrent inserts
// with the same email cannot both land.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("units").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "propertyId", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "sentAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
