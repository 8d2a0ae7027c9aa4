package repository

import (
	"context"

	"tripbook/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver and assigns its ID.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver with its trips.
	GetByID(ctx context.Context, id uint) (*domain.Driver, error)

	// GetAll retrieves all drivers with their trips.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// Update overwrites every mutable column of an existing driver.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete removes a driver.
	Delete(ctx context.Context, id uint) error
}
