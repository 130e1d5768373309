package controllers

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB collections
var (
	AccountCollection *mongo.Collection
	RoundCollection   *mongo.Collection
	EntryCollection   *mongo.Collection
)

// Initialize MongoDB collections
func SetAccountCollection(db *mongo.Database) {
	AccountCollection = db.Collection("accounts")

	// Create a unique index on the "player" field
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"player": 1}, // Index on "player" field, ascending
		Options: options.Index().SetUnique(true),
	}
	_, err := AccountCollection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		log.Fatalf("Failed to create unique index on player field: %v", err)
	}
}

func SetRoundCollection(db *mongo.Database) {
	RoundCollection = db.Collection("rounds")
}

func SetEntryCollection(db *mongo.Database) {
	EntryCollection = db.Collection("entries")
}
