package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbook/internal/repository"
	"tripbook/internal/service"
	"tripbook/internal/tests"
)

func johnInput() service.DriverInput {
	return service.DriverInput{
		Name:            "John Smith",
		LicenceNumber:   "ABC12345",
		PhoneNumber:     "+380991234567",
		Rating:          "4.8",
		ExperienceYears: 5.0,
		Status:          "active",
	}
}

func TestDriver_CreateAndGet(t *testing.T) {
	t.Parallel()

	svc := service.NewDriverService(tests.NewMockStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, johnInput())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", got.Name)
	assert.Equal(t, "ABC12345", got.LicenceNumber)
	assert.Equal(t, "4.8", got.Rating)
	assert.Equal(t, 5.0, got.ExperienceYears)
	assert.Equal(t, "active", got.Status)
}

func TestDriver_StatusIsFreeText(t *testing.T) {
	t.Parallel()

	svc := service.NewDriverService(tests.NewMockStore())
	in := johnInput()
	in.Status = "on a coffee break"

	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "on a coffee break", created.Status)
}

func TestDriver_ReplaceAndDeleteMissing(t *testing.T) {
	t.Parallel()

	store := tests.NewMockStore()
	svc := service.NewDriverService(store)
	ctx := context.Background()

	_, err := svc.Replace(ctx, 7, johnInput())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 7), repository.ErrNotFound)
	assert.Equal(t, 0, store.CountDrivers())
}

func TestDriver_Replace(t *testing.T) {
	t.Parallel()

	svc := service.NewDriverService(tests.NewMockStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, johnInput())
	require.NoError(t, err)

	in := johnInput()
	in.Rating = "5.0"
	in.ExperienceYears = 6
	in.Status = "inactive"
	_, err = svc.Replace(ctx, created.ID, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.0", got.Rating)
	assert.Equal(t, 6.0, got.ExperienceYears)
	assert.Equal(t, "inactive", got.Status)
}

func TestDriver_GetIncludesShallowTrips(t *testing.T) {
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

	got, err := drivers.Get(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, got.Trips, 1)
	assert.Nil(t, got.Trips[0].User)
	assert.Nil(t, got.Trips[0].Driver)

	list, err := drivers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Trips, 1)
}

func TestDriver_DeleteWithTripsThenGetIsNotFound(t *testing.T) {
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

	require.NoError(t, drivers.Delete(ctx, driver.ID))

	_, err = drivers.Get(ctx, driver.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, store.CountTrips())

	got, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Trips)
}
