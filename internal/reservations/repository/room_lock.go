package repository

import (
	"context"
	"fmt"
	reservationserrors "hotelbooking/internal/reservations/errors"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "Reservation_locks"
)

// RoomLockRepository stores per-room advisory locks. The unique _id makes a
// second insert for the same room fail while the first holder is alive.
type RoomLockRepository interface {
	Acquire(ctx context.Context, lock *model.ReservationLock) error
	// ReleaseExpired removes the lock only if it expired before now. Reports whether it did.
	ReleaseExpired(ctx context.Context, lockID string, now time.Time) (bool, error)
	// Fence refreshes the lock inside the caller's transaction. It returns
	// ErrLockLost when owner no longer holds the lock.
	Fence(ctx context.Context, lockID string, owner string, expiresAt time.Time) error
	// Release removes the lock only if owner still holds it.
	Release(ctx context.Context, lockID string, owner string) error
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire returns ErrLockHeld when another request holds the room.
func (r *mongoRoomLockRepository) Acquire(ctx context.Context, lock *model.ReservationLock) error {
	lock.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reservationserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire room lock: %w", err)
	}
	return nil
}

func (r *mongoRoomLockRepository) ReleaseExpired(ctx context.Context, lockID string, now time.Time) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":        lockID,
		"expires_at": bson.M{"$lt": now},
	})
	if err != nil {
		return false, fmt.Errorf("failed to release expired room lock: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoRoomLockRepository) Fence(ctx context.Context, lockID string, owner string, expiresAt time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": lockID, "owner": owner},
		bson.M{"$set": bson.M{
			"fenced_at":  time.Now().UTC(),
			"expires_at": expiresAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to fence room lock: %w", err)
	}
	if res.MatchedCount == 0 {
		return reservationserrors.ErrLockLost
	}
	return nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, lockID string, owner string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner}); err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}
	return nil
}
