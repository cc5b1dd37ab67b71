package service

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "hotelbooking/internal/reservations/errors"
	"hotelbooking/internal/reservations/repository"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"time"

	"github.com/google/uuid"
)

const lockReleaseTimeout = 2 * time.Second

// RoomLocker serializes reservation attempts on the same room across service instances.
type RoomLocker struct {
	repo repository.RoomLockRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewRoomLocker(repo repository.RoomLockRepository, cfg *config.Config) *RoomLocker {
	return &RoomLocker{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// RoomLease is a held room lock.
type RoomLease struct {
	locker *RoomLocker
	ctx    context.Context
	roomID string
	lockID string
	owner  string
}

// Lock blocks until the room is held, LockWaitTimeout passes or ctx ends.
func (l *RoomLocker) Lock(ctx context.Context, roomID string) (*RoomLease, error) {
	lockID := roomLockID(roomID)
	owner := uuid.NewString()

	waitCtx := ctx
	if l.cfg.LockWaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.cfg.LockWaitTimeout)
		defer cancel()
	}

	for {
		err := l.repo.Acquire(waitCtx, &model.ReservationLock{
			ID:        lockID,
			RoomID:    roomID,
			Owner:     owner,
			ExpiresAt: l.now().Add(l.cfg.LockTTL),
		})
		if err == nil {
			return &RoomLease{locker: l, ctx: ctx, roomID: roomID, lockID: lockID, owner: owner}, nil
		}
		if !errors.Is(err, reservationserrors.ErrLockHeld) {
			if waitCtx.Err() != nil {
				// The insert may have reached the server before the deadline fired.
				l.release(ctx, lockID, owner)
				return nil, l.waitError(ctx, roomID)
			}
			return nil, apperrors.Internal("Failed to acquire room lock", err)
		}

		// A crashed holder leaves its lock behind until the TTL monitor runs.
		released, err := l.repo.ReleaseExpired(waitCtx, lockID, l.now())
		if err != nil && waitCtx.Err() == nil {
			l.cfg.Log.Warn("Failed to release expired room lock", "lock_id", lockID, "error", err)
		}
		if released {
			l.cfg.Log.Warn("Took over expired room lock", "lock_id", lockID)
			continue
		}

		timer := time.NewTimer(l.cfg.LockRetryInterval)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, l.waitError(ctx, roomID)
		case <-timer.C:
		}
	}
}

// Fence must run inside the booking transaction before the overlap check. It
// writes the lock document under the transaction, so a takeover of an expired
// lease either fails here or conflicts with the holder until it commits.
func (lease *RoomLease) Fence(txCtx context.Context) error {
	l := lease.locker
	err := l.repo.Fence(txCtx, lease.lockID, lease.owner, l.now().Add(l.cfg.LockTTL))
	if err == nil {
		return nil
	}
	if errors.Is(err, reservationserrors.ErrLockLost) {
		l.cfg.Log.Warn("Room lock was taken over before the reservation was stored", "lock_id", lease.lockID)
		return apperrors.Conflict(fmt.Sprintf("The room with id=%s is currently being reserved by another request. Please try again.", lease.roomID))
	}
	return err
}

// Release is safe to call after the request context is cancelled.
func (lease *RoomLease) Release() {
	lease.locker.release(lease.ctx, lease.lockID, lease.owner)
}

// --- Helpers ---

func (l *RoomLocker) release(ctx context.Context, lockID, owner string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
	defer cancel()

	if err := l.repo.Release(releaseCtx, lockID, owner); err != nil {
		l.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", err)
	}
}

func (l *RoomLocker) waitError(ctx context.Context, roomID string) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Timeout("Request timed out while waiting for the room")
		}
		return fmt.Errorf("waiting for room lock: %w", err)
	}
	return apperrors.Conflict(fmt.Sprintf("The room with id=%s is currently being reserved by another request. Please try again.", roomID))
}

func roomLockID(roomID string) string {
	return "reservation_lock_" + roomID
}
