package repository

import (
	"context"

	"tripbook/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user with its trips, each trip carrying its user and driver.
	GetByID(ctx context.Context, id uint) (*domain.User, error)

	// GetAll retrieves all users with their trips.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update overwrites every mutable column of an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user.
	Delete(ctx context.Context, id uint) error
}
