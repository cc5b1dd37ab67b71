package mongo

import (
	"context"
	"fmt"
	catalogrepo "hotelbooking/internal/catalog/repository"
	"hotelbooking/internal/migrations/mongo/validators"
	reservationrepo "hotelbooking/internal/reservations/repository"
	"hotelbooking/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionDefinition describes one collection the service depends on.
type CollectionDefinition struct {
	Name      string
	Validator bson.M
	Indexes   []mongo.IndexModel
}

// Collections lists every collection with its validator and indexes, in creation order.
func Collections() []CollectionDefinition {
	return []CollectionDefinition{
		{
			Name:      catalogrepo.HotelsCollectionName,
			Validator: validators.HotelValidator(),
		},
		{
			Name:      catalogrepo.RoomsCollectionName,
			Validator: validators.RoomValidator(),
			Indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "hotel_id", Value: 1}}},
			},
		},
		{
			Name:      reservationrepo.CollectionName,
			Validator: validators.ReservationValidator(),
			Indexes: []mongo.IndexModel{
				{Keys: bson.D{
					{Key: "room_id", Value: 1},
					{Key: "date_start", Value: 1},
					{Key: "date_end", Value: 1},
				}},
				{Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "created_at", Value: 1},
				}},
			},
		},
		{
			Name:      reservationrepo.LockCollectionName,
			Validator: validators.ReservationLockValidator(),
			Indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "expires_at", Value: 1}},
					Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
				},
			},
		},
	}
}

type Migrator struct {
	db  *mongo.Database
	log *logger.Logger
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{db: db, log: log}
}

func (m *Migrator) Run(ctx context.Context) error {
	m.log.Info("Running Mongo migrations", "database", m.db.Name())

	for _, def := range Collections() {
		if err := m.ensureCollection(ctx, def.Name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := m.ensureIndexes(ctx, def.Name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	m.log.Info("All migrations applied successfully")
	return nil
}

func (m *Migrator) ensureCollection(ctx context.Context, name string, validator bson.M) error {
	existing, err := m.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		m.log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := m.db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	m.log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := m.db.RunCommand(ctx, command).Err(); err != nil {
		m.log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func (m *Migrator) ensureIndexes(ctx context.Context, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	m.log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
