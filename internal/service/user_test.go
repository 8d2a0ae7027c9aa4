package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbook/internal/repository"
	"tripbook/internal/service"
	"tripbook/internal/tests"
)

func aliceInput() service.UserInput {
	return service.UserInput{
		Name:        "Alice Brown",
		PhoneNumber: "+380991234567",
		Email:       "alice@mail.com",
		Rating:      4.8,
	}
}

func TestUser_CreateAssignsFreshIDAndRoundTrips(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	svc := service.NewUserService(store)
	ctx := context.Background()

	first, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID, "ids must never be reused")

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Brown", got.Name)
	assert.Equal(t, "+380991234567", got.PhoneNumber)
	assert.Equal(t, "alice@mail.com", got.Email)
	assert.Equal(t, 4.8, got.Rating)
	assert.Empty(t, got.Trips)
}

func TestUser_RegistrationDateIsReadPerCreate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	svc := service.NewUserService(tests.NewMockStore()).WithClock(func() time.Time { return now })
	ctx := context.Background()

	first, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	second, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.RegistrationDate)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), second.RegistrationDate)
}

func TestUser_GetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := service.NewUserService(tests.NewMockStore())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "user with id 42")
}

func TestUser_ZeroIDIsInvalid(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	svc := service.NewUserService(store)
	ctx := context.Background()

	_, err := svc.Get(ctx, 0)
	assert.ErrorIs(t, err, service.ErrInvalidID)
	_, err = svc.Replace(ctx, 0, aliceInput())
	assert.ErrorIs(t, err, service.ErrInvalidID)
	assert.ErrorIs(t, svc.Delete(ctx, 0), service.ErrInvalidID)

	assert.Zero(t, store.DoCallCount, "invalid ids must not open a unit of work")
}

func TestUser_ReplaceOverwritesAllFields(t *testing.T) {
	t.Parallel()

	svc := service.NewUserService(tests.NewMockStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	replaced, err := svc.Replace(ctx, created.ID, service.UserInput{
		Name:        "Alice Green",
		PhoneNumber: "+380500000000",
		Email:       "green@mail.com",
		Rating:      3.1,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, created.RegistrationDate, replaced.RegistrationDate)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Green", got.Name)
	assert.Equal(t, "+380500000000", got.PhoneNumber)
	assert.Equal(t, "green@mail.com", got.Email)
	assert.Equal(t, 3.1, got.Rating)
}

func TestUser_ReplaceMissingLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	svc := service.NewUserService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	_, err = svc.Replace(ctx, created.ID+1, service.UserInput{Name: "Ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, 1, store.CountUsers())
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Brown", got.Name)
}

func TestUser_DeleteThenGetIsNotFound(t *testing.T) {
	t.Parallel()

	svc := service.NewUserService(tests.NewMockStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, aliceInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrNotFound)
}

func TestUser_DeleteCascadesTrips(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	users := service.NewUserService(store)
	drivers := service.NewDriverService(store)
	trips := service.NewTripService(store)
	ctx := context.Background()

	user, err := users.Create(ctx, aliceInput())
	require.NoError(t, err)
	driver, err := drivers.Create(ctx, johnInput())
	require.NoError(t, err)
	_, err = trips.Create(ctx, tripInput(user.ID, driver.ID))
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	assert.Equal(t, 0, store.CountTrips())
	assert.Equal(t, 1, store.CountDrivers())
}

func TestUser_ListIncludesTrips(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	users := service.NewUserService(store)
	drivers := service.NewDriverService(store)
	trips := service.NewTripService(store)
	ctx := context.Background()

	alice, err := users.Create(ctx, aliceInput())
	require.NoError(t, err)
	bob, err := users.Create(ctx, service.UserInput{Name: "Bob", PhoneNumber: "1", Email: "bob@mail.com", Rating: 5})
	require.NoError(t, err)
	driver, err := drivers.Create(ctx, johnInput())
	require.NoError(t, err)
	_, err = trips.Create(ctx, tripInput(alice.ID, driver.ID))
	require.NoError(t, err)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].ID)
	assert.Len(t, list[0].Trips, 1)
	assert.Equal(t, bob.ID, list[1].ID)
	assert.Empty(t, list[1].Trips)
}

func TestUser_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	store.DoError = errors.New("connection refused")
	svc := service.NewUserService(store)

	_, err := svc.List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
