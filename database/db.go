package database

import (
	"context"
	"time"

	"voicedesk/config"
	"voicedesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// MongoClient is the shared MongoDB client. The doctor-schedule and
// appointment-record repositories resolve their collections from it.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection with a ping.
// The process cannot serve bookings without the schedule store, so a
// failure here is fatal.
func InitDB() {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Fatal("database: mongo connect failed", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("database: mongo ping failed", zap.Error(err))
	}

	MongoClient = client
	logger.Info("database: connected to MongoDB")
}

// CloseDB disconnects the shared client during graceful shutdown.
func CloseDB(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		utils.GetLogger().Warn("database: mongo disconnect failed", zap.Error(err))
	}
}
