package db

import (
	"context"
	"log"
	"time"

	"soko/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client             *mongo.Client
	ListingsCollection *mongo.Collection
	UserCollection     *mongo.Collection
	BookingsCollection *mongo.Collection
)

// Init connects to MongoDB and binds the named collections. config.Load
// must have run first.
func Init() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.App.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}
	Client = client

	database := client.Database(config.App.MongoDB)
	ListingsCollection = database.Collection("listings")
	UserCollection = database.Collection("users")
	BookingsCollection = database.Collection("bookings")
}

// Close disconnects the client during shutdown.
func Close(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}
