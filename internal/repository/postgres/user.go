package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripbook/internal/domain"
)

// UserRepository implements repository.UserRepository using gorm.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// GetByID retrieves a user by ID, with trips and the trips' user and driver.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Trips", orderByID).
		Preload("Trips.User").
		Preload("Trips.Driver").
		First(&user, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetAll retrieves all users with their trips.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).
		Preload("Trips", orderByID).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// Update overwrites the mutable columns of a user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":         user.Name,
			"phone_number": user.PhoneNumber,
			"email":        user.Email,
			"rating":       user.Rating,
		})
	return affected(result)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.User{}, id))
}

// orderByID keeps preloaded collections in insertion order.
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
