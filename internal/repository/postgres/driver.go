package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripbook/internal/domain"
)

// DriverRepository is a gorm implementation of repository.DriverRepository.
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository.
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(driver).Error)
}

// GetByID retrieves a driver by ID with its trips.
func (r *DriverRepository) GetByID(ctx context.Context, id uint) (*domain.Driver, error) {
	var driver domain.Driver
	if err := r.db.WithContext(ctx).Preload("Trips", orderByID).First(&driver, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &driver, nil
}

// GetAll retrieves all drivers with their trips.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	var drivers []*domain.Driver
	if err := r.db.WithContext(ctx).Preload("Trips", orderByID).Order("id").Find(&drivers).Error; err != nil {
		return nil, translateError(err)
	}
	return drivers, nil
}

// Update overwrites the mutable columns of a driver.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Driver{}).
		Where("id = ?", driver.ID).
		Updates(map[string]any{
			"name":            driver.Name,
			"licence_number":  driver.LicenceNumber,
			"phone_number":    driver.PhoneNumber,
			"rating":          driver.Rating,
			"experince_years": driver.ExperienceYears,
			"status":          driver.Status,
		})
	return affected(result)
}

// Delete removes a driver.
func (r *DriverRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Driver{}, id))
}
