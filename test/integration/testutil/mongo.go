package testutil

import (
	"context"
	catalogrepo "hotelbooking/internal/catalog/repository"
	"hotelbooking/internal/reservations/repository"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ConnectionTimeout      = 10 * time.Second
	ReservationsCollection = repository.CollectionName
)

// MongoHelper provides MongoDB test utilities
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanCollection removes all documents from a specific collection
func (m *MongoHelper) CleanCollection(t *testing.T, collectionName string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(collectionName).DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("failed to clean collection %s: %v", collectionName, err)
	}
}

func (m *MongoHelper) CountDocuments(t *testing.T, collectionName string) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collectionName, err)
	}
	return count
}

// SeedRoom inserts a hotel with one room and returns the room id. The documents
// are removed when the test finishes.
func (m *MongoHelper) SeedRoom(t *testing.T, enabled bool) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	hotelID := primitive.NewObjectID()
	roomID := primitive.NewObjectID()

	hotels := m.Database.Collection(catalogrepo.HotelsCollectionName)
	rooms := m.Database.Collection(catalogrepo.RoomsCollectionName)

	if _, err := hotels.InsertOne(ctx, bson.M{
		"_id":         hotelID,
		"title":       "Integration Hotel",
		"description": "Seeded by integration tests",
		"created_at":  now,
		"updated_at":  now,
	}); err != nil {
		t.Fatalf("failed to seed hotel: %v", err)
	}
	if _, err := rooms.InsertOne(ctx, bson.M{
		"_id":         roomID,
		"hotel_id":    hotelID.Hex(),
		"description": "Integration room",
		"images":      []string{"integration/1.jpg"},
		"is_enabled":  enabled,
		"created_at":  now,
		"updated_at":  now,
	}); err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = rooms.DeleteOne(ctx, bson.M{"_id": roomID})
		_, _ = hotels.DeleteOne(ctx, bson.M{"_id": hotelID})
	})
	return roomID.Hex()
}
