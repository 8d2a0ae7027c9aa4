package service

import (
	"context"
	"fmt"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// TripService handles trip operations.
type TripService struct {
	uow repository.UnitOfWork
}

// NewTripService creates a new TripService.
func NewTripService(uow repository.UnitOfWork) *TripService {
	return &TripService{uow: uow}
}

// TripInput contains the fields required to create a trip.
type TripInput struct {
	StartTime string
	EndTime   string
	Price     float64
	UserID    uint
	DriverID  uint
}

// Get retrieves a trip with its user and driver.
func (s *TripService) Get(ctx context.Context, id uint) (*domain.Trip, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var trip *domain.Trip
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		trip, err = repos.Trips().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("trip with id %d: %w", id, err)
	}
	return trip, nil
}

// List retrieves all trips with their users and drivers.
func (s *TripService) List(ctx context.Context) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		trips, err = repos.Trips().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// Create inserts a trip and returns it re-read with its user and driver.
// A missing user or driver fails with repository.ErrReferentialIntegrity
// and leaves nothing behind.
func (s *TripService) Create(ctx context.Context, in TripInput) (*domain.Trip, error) {
	var trip *domain.Trip
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		created := &domain.Trip{
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Price:     in.Price,
			UserID:    in.UserID,
			DriverID:  in.DriverID,
		}
		if err := repos.Trips().Create(ctx, created); err != nil {
			return err
		}

		var err error
		trip, err = repos.Trips().GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return trip, nil
}

// Patch applies a partial update to a trip and returns it re-read with its
// user and driver.
func (s *TripService) Patch(ctx context.Context, id uint, patch domain.TripPatch) (*domain.Trip, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var trip *domain.Trip
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Trips().Patch(ctx, id, patch); err != nil {
			return err
		}

		var err error
		trip, err = repos.Trips().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("trip with id %d: %w", id, err)
	}
	return trip, nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Trips().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("trip with id %d: %w", id, err)
	}
	return nil
}
