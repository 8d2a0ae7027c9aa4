// Package tests provides in-memory fakes shared by package-level tests.
package tests

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockStore is an in-memory repository.UnitOfWork. Each Do call works on
// the live maps and restores a snapshot unless fn returns nil.
type MockStore struct {
	mu      sync.Mutex
	users   map[uint]domain.User
	drivers map[uint]domain.Driver
	trips   map[uint]domain.Trip

	nextUserID   uint
	nextDriverID uint
	nextTripID   uint

	// Counters for verification
	DoCallCount int32

	// Error injection
	DoError error
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{
		users:   make(map[uint]domain.User),
		drivers: make(map[uint]domain.Driver),
		trips:   make(map[uint]domain.Trip),
	}
}

type snapshot struct {
	users        map[uint]domain.User
	drivers      map[uint]domain.Driver
	trips        map[uint]domain.Trip
	nextUserID   uint
	nextDriverID uint
	nextTripID   uint
}

func (m *MockStore) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	atomic.AddInt32(&m.DoCallCount, 1)
	if m.DoError != nil {
		return m.DoError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := snapshot{
		users:        maps.Clone(m.users),
		drivers:      maps.Clone(m.drivers),
		trips:        maps.Clone(m.trips),
		nextUserID:   m.nextUserID,
		nextDriverID: m.nextDriverID,
		nextTripID:   m.nextTripID,
	}

	committed := false
	defer func() {
		if !committed {
			m.users, m.drivers, m.trips = snap.users, snap.drivers, snap.trips
			m.nextUserID, m.nextDriverID, m.nextTripID = snap.nextUserID, snap.nextDriverID, snap.nextTripID
		}
	}()

	if err := fn(mockRepos{m}); err != nil {
		return err
	}
	committed = true
	return nil
}

// CountUsers returns the number of stored users.
func (m *MockStore) CountUsers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// CountDrivers returns the number of stored drivers.
func (m *MockStore) CountDrivers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drivers)
}

// CountTrips returns the number of stored trips.
func (m *MockStore) CountTrips() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trips)
}

// mockRepos must only be used while the store lock is held by Do.
type mockRepos struct {
	m *MockStore
}

func (r mockRepos) Users() repository.UserRepository     { return mockUsers(r) }
func (r mockRepos) Drivers() repository.DriverRepository { return mockDrivers(r) }
func (r mockRepos) Trips() repository.TripRepository     { return mockTrips(r) }

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

type mockUsers struct {
	m *MockStore
}

func (r mockUsers) Create(ctx context.Context, user *domain.User) error {
	r.m.nextUserID++
	user.ID = r.m.nextUserID
	stored := *user
	stored.Trips = nil
	r.m.users[user.ID] = stored
	return nil
}

func (r mockUsers) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, trip := range r.m.sortedTrips(func(t domain.Trip) bool { return t.UserID == id }) {
		r.m.attach(&trip)
		user.Trips = append(user.Trips, trip)
	}
	return &user, nil
}

func (r mockUsers) GetAll(ctx context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(r.m.users))
	for _, id := range sortedKeys(r.m.users) {
		user := r.m.users[id]
		user.Trips = r.m.sortedTrips(func(t domain.Trip) bool { return t.UserID == id })
		result = append(result, &user)
	}
	return result, nil
}

func (r mockUsers) Update(ctx context.Context, user *domain.User) error {
	stored, ok := r.m.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = user.Name
	stored.PhoneNumber = user.PhoneNumber
	stored.Email = user.Email
	stored.Rating = user.Rating
	r.m.users[user.ID] = stored
	return nil
}

func (r mockUsers) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.users, id)
	maps.DeleteFunc(r.m.trips, func(_ uint, t domain.Trip) bool { return t.UserID == id })
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

type mockDrivers struct {
	m *MockStore
}

func (r mockDrivers) Create(ctx context.Context, driver *domain.Driver) error {
	r.m.nextDriverID++
	driver.ID = r.m.nextDriverID
	stored := *driver
	stored.Trips = nil
	r.m.drivers[driver.ID] = stored
	return nil
}

func (r mockDrivers) GetByID(ctx context.Context, id uint) (*domain.Driver, error) {
	driver, ok := r.m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	driver.Trips = r.m.sortedTrips(func(t domain.Trip) bool { return t.DriverID == id })
	return &driver, nil
}

func (r mockDrivers) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	result := make([]*domain.Driver, 0, len(r.m.drivers))
	for _, id := range sortedKeys(r.m.drivers) {
		driver := r.m.drivers[id]
		driver.Trips = r.m.sortedTrips(func(t domain.Trip) bool { return t.DriverID == id })
		result = append(result, &driver)
	}
	return result, nil
}

func (r mockDrivers) Update(ctx context.Context, driver *domain.Driver) error {
	stored, ok := r.m.drivers[driver.ID]
	if !ok {
		return repository.ErrNotFound
	}
	trips := stored.Trips
	stored = *driver
	stored.Trips = trips
	r.m.drivers[driver.ID] = stored
	return nil
}

func (r mockDrivers) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.drivers, id)
	maps.DeleteFunc(r.m.trips, func(_ uint, t domain.Trip) bool { return t.DriverID == id })
	return nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

type mockTrips struct {
	m *MockStore
}

func (r mockTrips) Create(ctx context.Context, trip *domain.Trip) error {
	if err := r.m.checkRefs(trip.UserID, trip.DriverID); err != nil {
		return err
	}
	r.m.nextTripID++
	trip.ID = r.m.nextTripID
	stored := *trip
	stored.User, stored.Driver = nil, nil
	r.m.trips[trip.ID] = stored
	return nil
}

func (r mockTrips) GetByID(ctx context.Context, id uint) (*domain.Trip, error) {
	trip, ok := r.m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.m.attach(&trip)
	return &trip, nil
}

func (r mockTrips) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	trips := r.m.sortedTrips(func(domain.Trip) bool { return true })
	result := make([]*domain.Trip, 0, len(trips))
	for i := range trips {
		r.m.attach(&trips[i])
		result = append(result, &trips[i])
	}
	return result, nil
}

func (r mockTrips) Patch(ctx context.Context, id uint, patch domain.TripPatch) error {
	trip, ok := r.m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	patch.Apply(&trip)
	if err := r.m.checkRefs(trip.UserID, trip.DriverID); err != nil {
		return err
	}
	r.m.trips[id] = trip
	return nil
}

func (r mockTrips) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.trips, id)
	return nil
}

func (r mockTrips) DeleteByUserID(ctx context.Context, userID uint) error {
	maps.DeleteFunc(r.m.trips, func(_ uint, t domain.Trip) bool { return t.UserID == userID })
	return nil
}

func (r mockTrips) DeleteByDriverID(ctx context.Context, driverID uint) error {
	maps.DeleteFunc(r.m.trips, func(_ uint, t domain.Trip) bool { return t.DriverID == driverID })
	return nil
}

// ──────────────────────────────────────────────
// HELPERS
// ──────────────────────────────────────────────

func (m *MockStore) checkRefs(userID, driverID uint) error {
	if _, ok := m.users[userID]; !ok {
		return repository.ErrReferentialIntegrity
	}
	if _, ok := m.drivers[driverID]; !ok {
		return repository.ErrReferentialIntegrity
	}
	return nil
}

// attach sets the trip's user and driver without their trip lists.
func (m *MockStore) attach(trip *domain.Trip) {
	user := m.users[trip.UserID]
	driver := m.drivers[trip.DriverID]
	trip.User = &user
	trip.Driver = &driver
}

func (m *MockStore) sortedTrips(keep func(domain.Trip) bool) []domain.Trip {
	var trips []domain.Trip
	for _, id := range sortedKeys(m.trips) {
		if trip := m.trips[id]; keep(trip) {
			trips = append(trips, trip)
		}
	}
	return trips
}

// Ensure MockStore implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*MockStore)(nil)

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
