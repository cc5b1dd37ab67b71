package repository

import (
	"context"
	"errors"
	"fmt"
	catalogerrors "hotelbooking/internal/catalog/errors"
	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	HotelsCollectionName = "Hotels"
	RoomsCollectionName  = "Hotel_rooms"
)

// CatalogRepository reads hotels and rooms owned by the catalog service.
// The Insert methods exist for the migration job's development seed.
type CatalogRepository interface {
	FindRoomByID(ctx context.Context, id string) (*model.Room, error)
	FindHotelByID(ctx context.Context, id string) (*model.Hotel, error)
	InsertHotel(ctx context.Context, hotel *model.Hotel) error
	InsertRoom(ctx context.Context, room *model.Room) error
}

type mongoCatalogRepository struct {
	cfg    *config.Config
	hotels *mongo.Collection
	rooms  *mongo.Collection
}

func NewMongoCatalogRepository(cfg *config.Config) CatalogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCatalogRepository{
		cfg:    cfg,
		hotels: db.Collection(HotelsCollectionName),
		rooms:  db.Collection(RoomsCollectionName),
	}
}

func (r *mongoCatalogRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if mongotx.IsSessionContext(ctx) {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCatalogRepository) FindRoomByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.rooms.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (r *mongoCatalogRepository) FindHotelByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var hotel model.Hotel
	err = r.hotels.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

func (r *mongoCatalogRepository) InsertHotel(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	hotel.CreatedAt, hotel.UpdatedAt = now, now

	result, err := r.hotels.InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("failed to insert hotel: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hotel.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCatalogRepository) InsertRoom(ctx context.Context, room *model.Room) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	room.CreatedAt, room.UpdatedAt = now, now

	result, err := r.rooms.InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid.Hex()
	}
	return nil
}
