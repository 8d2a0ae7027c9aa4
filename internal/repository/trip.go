package repository

import (
	"context"

	"tripbook/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	// Returns ErrReferentialIntegrity if the user or driver does not exist.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip with its user and driver.
	GetByID(ctx context.Context, id uint) (*domain.Trip, error)

	// GetAll retrieves all trips with their users and drivers.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// Patch assigns the non-nil fields of patch to an existing trip.
	Patch(ctx context.Context, id uint, patch domain.TripPatch) error

	// Delete removes a trip.
	Delete(ctx context.Context, id uint) error

	// DeleteByUserID removes every trip owned by a user.
	DeleteByUserID(ctx context.Context, userID uint) error

	// DeleteByDriverID removes every trip driven by a driver.
	DeleteByDriverID(ctx context.Context, driverID uint) error
}
