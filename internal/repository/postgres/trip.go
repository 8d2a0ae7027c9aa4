package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// TripRepository is a gorm implementation of repository.TripRepository.
type TripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	err := translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(trip).Error)
	return withReferences(err, &trip.UserID, &trip.DriverID)
}

// GetByID retrieves a trip by ID with its user and driver.
func (r *TripRepository) GetByID(ctx context.Context, id uint) (*domain.Trip, error) {
	var trip domain.Trip
	if err := r.withRelations(ctx).First(&trip, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &trip, nil
}

// GetAll retrieves all trips with their users and drivers.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	if err := r.withRelations(ctx).Order("id").Find(&trips).Error; err != nil {
		return nil, translateError(err)
	}
	return trips, nil
}

// Patch assigns the non-nil fields of patch to an existing trip.
func (r *TripRepository) Patch(ctx context.Context, id uint, patch domain.TripPatch) error {
	if patch.Empty() {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return translateError(err)
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Trip{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	return withReferences(affected(result), patch.UserID, patch.DriverID)
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Trip{}, id))
}

// DeleteByUserID removes every trip owned by a user.
func (r *TripRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return translateError(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Trip{}).Error)
}

// DeleteByDriverID removes every trip driven by a driver.
func (r *TripRepository) DeleteByDriverID(ctx context.Context, driverID uint) error {
	return translateError(r.db.WithContext(ctx).Where("driver_id = ?", driverID).Delete(&domain.Trip{}).Error)
}

// withRelations preloads the trip's user and driver one level deep.
func (r *TripRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Driver")
}
