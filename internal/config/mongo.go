package config

import (
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/helper"
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func InitMongo(cfg *AppConfig) (*mongo.Client, *mongo.Database) {
	client, err := helper.RetryWithBackoff(func() (*mongo.Client, bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, true, err
		}

		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, true, err
		}

		return client, false, nil
	}, cfg.MongoConnectRetries, time.Second)
	if err != nil {
		log.Fatalf("failed connecting to mongodb: %v", err)
	}

	db := client.Database(cfg.MongoDatabase)

	if err := EnsureIndexes(context.Background(), db); err != nil {
		slog.Warn("Failed to create mongodb indexes", "error", err)
	}

	slog.Info("Database connected successfully", "database", cfg.MongoDatabase)
	return client, db
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	chatIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "allUsers", Value: 1}},
			Options: options.Index().SetName("chat_members_idx"),
		},
		{
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index().SetName("chat_updated_idx"),
		},
	}
	if _, err := db.Collection(constant.CollectionChats).Indexes().CreateMany(ctx, chatIndexes); err != nil {
		return fmt.Errorf("chats indexes: %w", err)
	}

	messageIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "chat", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("message_chat_created_idx"),
	}
	if _, err := db.Collection(constant.CollectionMessages).Indexes().CreateOne(ctx, messageIndex); err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}

	return nil
}
