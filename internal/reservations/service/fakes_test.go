package service

import (
	"context"
	"fmt"
	"hotelbooking/internal/reservations/events"
	reservationserrors "hotelbooking/internal/reservations/errors"
	"hotelbooking/internal/reservations/validator"
	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"sort"
	"sync"
	"testing"
	"time"
)

const (
	testRoomID     = "65f0000000000000000000a1"
	testHotelID    = "65f0000000000000000000b1"
	disabledRoomID = "65f0000000000000000000a2"
	missingRoomID  = "65f0000000000000000000ff"
)

// memReservationRepository keeps reservations in memory. It mimics the Mongo
// repository's sentinel errors.
type memReservationRepository struct {
	mu           sync.Mutex
	reservations map[string]*model.Reservation
	seq          int
	now          func() time.Time

	insertErr error
	txCalls   int

	// beforeInsert runs outside the mutex before each Insert.
	beforeInsert func()
}

func newMemReservationRepository() *memReservationRepository {
	return &memReservationRepository{
		reservations: make(map[string]*model.Reservation),
		now:          time.Now,
	}
}

func (r *memReservationRepository) Insert(ctx context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	hook := r.beforeInsert
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.seq++
	reservation.ID = fmt.Sprintf("%024x", r.seq)
	reservation.CreatedAt = r.now().Add(time.Duration(r.seq) * time.Millisecond)
	stored := *reservation
	r.reservations[reservation.ID] = &stored
	return nil
}

func (r *memReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memReservationRepository) FindByUser(ctx context.Context, userID string) ([]*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Reservation, 0)
	for _, res := range r.reservations {
		if res.UserID == userID {
			cp := *res
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memReservationRepository) FindFirstOverlapping(ctx context.Context, roomID string, start, end time.Time) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.RoomID == roomID && res.Overlaps(start, end) {
			cp := *res
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReservationRepository) DeleteOwned(ctx context.Context, id string, userID string) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}
	if res.UserID != userID {
		return nil, reservationserrors.ErrNotOwner
	}
	delete(r.reservations, id)
	return res, nil
}

func (r *memReservationRepository) Delete(ctx context.Context, id string) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}
	delete(r.reservations, id)
	return res, nil
}

func (r *memReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	r.mu.Lock()
	r.txCalls++
	r.mu.Unlock()
	return fn(ctx)
}

func (r *memReservationRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reservations)
}

func (r *memReservationRepository) all() []*model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		result = append(result, res)
	}
	return result
}

// memLockRepository mimics the unique _id constraint of the lock collection.
// A fenced lock cannot be taken over until its owner releases it, the way a
// document written by an open transaction blocks outside writers.
type memLockRepository struct {
	mu     sync.Mutex
	locks  map[string]model.ReservationLock
	fenced map[string]string

	acquireCalls  int
	releaseCalled bool

	// afterAcquire runs once the lock is stored, before Acquire returns.
	afterAcquire func()
	// beforeFence runs once, on the first Fence call.
	beforeFence func()
}

func newMemLockRepository() *memLockRepository {
	return &memLockRepository{
		locks:  make(map[string]model.ReservationLock),
		fenced: make(map[string]string),
	}
}

func (r *memLockRepository) Acquire(ctx context.Context, lock *model.ReservationLock) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.acquireCalls++
	if _, held := r.locks[lock.ID]; held {
		r.mu.Unlock()
		return reservationserrors.ErrLockHeld
	}
	r.locks[lock.ID] = *lock
	hook := r.afterAcquire
	r.mu.Unlock()

	if hook != nil {
		hook()
		return ctx.Err()
	}
	return nil
}

func (r *memLockRepository) ReleaseExpired(ctx context.Context, lockID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, held := r.locks[lockID]
	if !held || !lock.ExpiresAt.Before(now) {
		return false, nil
	}
	if _, fenced := r.fenced[lockID]; fenced {
		return false, nil
	}
	delete(r.locks, lockID)
	return true, nil
}

func (r *memLockRepository) Fence(ctx context.Context, lockID string, owner string, expiresAt time.Time) error {
	r.mu.Lock()
	hook := r.beforeFence
	r.beforeFence = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	lock, held := r.locks[lockID]
	if !held || lock.Owner != owner {
		return reservationserrors.ErrLockLost
	}
	lock.ExpiresAt = expiresAt
	r.locks[lockID] = lock
	r.fenced[lockID] = owner
	return nil
}

func (r *memLockRepository) Release(ctx context.Context, lockID string, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseCalled = true
	if lock, held := r.locks[lockID]; held && lock.Owner == owner {
		delete(r.locks, lockID)
	}
	if r.fenced[lockID] == owner {
		delete(r.fenced, lockID)
	}
	return nil
}

// expire moves the stored expiry of lockID into the past.
func (r *memLockRepository) expire(lockID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lock, held := r.locks[lockID]; held {
		lock.ExpiresAt = time.Time{}
		r.locks[lockID] = lock
	}
}

func (r *memLockRepository) held(lockID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.locks[lockID]
	return ok
}

// mockCatalog serves rooms and hotels from maps.
type mockCatalog struct {
	mu     sync.Mutex
	rooms  map[string]*model.Room
	hotels map[string]*model.Hotel

	getRoomFunc func(ctx context.Context, roomID string) (*model.Room, error)
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		rooms: map[string]*model.Room{
			testRoomID: {
				ID:          testRoomID,
				HotelID:     testHotelID,
				Description: "Sea view double",
				Images:      []string{"rooms/a1/1.jpg"},
				Enabled:     true,
			},
			disabledRoomID: {
				ID:      disabledRoomID,
				HotelID: testHotelID,
				Enabled: false,
			},
		},
		hotels: map[string]*model.Hotel{
			testHotelID: {ID: testHotelID, Title: "Grand Hotel", Description: "By the sea"},
		},
	}
}

func (c *mockCatalog) GetRoom(ctx context.Context, roomID string) (*model.Room, error) {
	if c.getRoomFunc != nil {
		return c.getRoomFunc(ctx, roomID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	room, ok := c.rooms[roomID]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("The room with id=%s does not exist", roomID))
	}
	cp := *room
	return &cp, nil
}

func (c *mockCatalog) GetHotel(ctx context.Context, hotelID string) (*model.Hotel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hotel, ok := c.hotels[hotelID]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("The hotel with id=%s does not exist", hotelID))
	}
	cp := *hotel
	return &cp, nil
}

func (c *mockCatalog) Describe(ctx context.Context, roomID, hotelID string) (model.RoomView, model.HotelView, error) {
	roomView := model.RoomView{ID: roomID, Images: []string{}}
	hotelView := model.HotelView{ID: hotelID}
	if room, err := c.GetRoom(ctx, roomID); err == nil {
		roomView = room.View()
	}
	if hotel, err := c.GetHotel(ctx, hotelID); err == nil {
		hotelView = hotel.View()
	}
	return roomView, hotelView, nil
}

func (c *mockCatalog) InvalidateRoom(roomID string) {}

func (c *mockCatalog) InvalidateHotel(hotelID string) {}

func (c *mockCatalog) PurgeExpired() int { return 0 }

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu      sync.Mutex
	created []*model.Reservation
	deleted []string
}

func (p *recordingPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, reservation)
}

func (p *recordingPublisher) ReservationDeleted(ctx context.Context, reservation *model.Reservation, actorID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, reservation.ID)
}

var _ events.Publisher = (*recordingPublisher)(nil)

type testEnv struct {
	cfg       *config.Config
	catalog   *mockCatalog
	repo      *memReservationRepository
	locks     *memLockRepository
	publisher *recordingPublisher
	checker   *AvailabilityChecker
	locker    *RoomLocker
	store     *ReservationStore
	service   ReservationService
}

// testClock is a settable clock shared between goroutines.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixedNow is the clock every test runs against unless it overrides it.
var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Log:                         logger.Discard(),
		LockTTL:                     10 * time.Second,
		LockWaitTimeout:             2 * time.Second,
		LockRetryInterval:           time.Millisecond,
		AllowZeroLengthReservations: true,
	}
}

func newTestEnv() *testEnv {
	cfg := testConfig()
	env := &testEnv{
		cfg:       cfg,
		catalog:   newMockCatalog(),
		repo:      newMemReservationRepository(),
		locks:     newMemLockRepository(),
		publisher: &recordingPublisher{},
	}
	env.repo.now = func() time.Time { return fixedNow }

	env.locker = NewRoomLocker(env.locks, cfg)
	env.locker.now = func() time.Time { return fixedNow }
	env.store = NewReservationStore(env.repo, env.catalog, cfg)
	env.checker = NewAvailabilityChecker(env.catalog, env.store, env.locker, cfg)
	env.checker.now = func() time.Time { return fixedNow }
	env.service = NewReservationService(
		env.checker,
		env.store,
		validator.NewReservationValidator(cfg.Log),
		env.publisher,
		cfg,
	)
	return env
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !apperrors.HasCode(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}
