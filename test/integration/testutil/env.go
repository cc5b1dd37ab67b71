package testutil

import (
	"context"
	"encoding/base64"
	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/client"
	"os"
	"testing"
	"time"
)

const (
	DefaultHealthCheckTimeout = 30 * time.Second
	DefaultDatabaseName       = "hotelbooking"
	DefaultMongoURI           = "mongodb://localhost:27017/?replicaSet=rs0"
)

// TestEnv points the integration tests at a running reservations service and
// the Mongo database behind it.
type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	SealingKey   string
}

// NewTestEnv skips the calling test unless TEST_SERVER_URL is set.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}

	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    serverURL,
		SealingKey:   os.Getenv("AUTH_SEALING_KEY"),
	}
}

func (e *TestEnv) Setup(t *testing.T) *MongoHelper {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanCollection(t, ReservationsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultHealthCheckTimeout)
	defer cancel()
	if err := client.NewHttpClient(e.ServerURL).WaitForHealthy(ctx, DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("service not healthy: %v", err)
	}
	return mongo
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanCollection(t, ReservationsCollection)
		mongo.Close(t)
	}
}

// ClientFor returns a reservations client authenticated as the given principal.
func (e *TestEnv) ClientFor(t *testing.T, userID string, role auth.Role) *client.ReservationClient {
	t.Helper()

	key, err := base64.StdEncoding.DecodeString(e.SealingKey)
	if err != nil {
		t.Fatalf("AUTH_SEALING_KEY is not valid base64: %v", err)
	}
	tokens, err := auth.NewTokens(key)
	if err != nil {
		t.Fatalf("failed to create token sealer: %v", err)
	}
	token, err := tokens.Issue(auth.Principal{ID: userID, Role: role})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return client.NewReservationClient(e.ServerURL, token)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
