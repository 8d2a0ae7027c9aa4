package service

import (
	"context"
	"fmt"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// DriverService handles driver operations.
type DriverService struct {
	uow repository.UnitOfWork
}

// NewDriverService creates a new DriverService.
func NewDriverService(uow repository.UnitOfWork) *DriverService {
	return &DriverService{uow: uow}
}

// DriverInput contains every mutable driver field. Status is free text.
type DriverInput struct {
	Name            string
	LicenceNumber   string
	PhoneNumber     string
	Rating          string
	ExperienceYears float64
	Status          string
}

// Get retrieves a driver with its trips.
func (s *DriverService) Get(ctx context.Context, id uint) (*domain.Driver, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var driver *domain.Driver
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		driver, err = repos.Drivers().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("driver with id %d: %w", id, err)
	}
	return driver, nil
}

// List retrieves all drivers with their trips.
func (s *DriverService) List(ctx context.Context) ([]*domain.Driver, error) {
	var drivers []*domain.Driver
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		drivers, err = repos.Drivers().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// Create registers a new driver.
func (s *DriverService) Create(ctx context.Context, in DriverInput) (*domain.Driver, error) {
	driver := &domain.Driver{}
	in.applyTo(driver)

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Drivers().Create(ctx, driver)
	})
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return driver, nil
}

// Replace overwrites every mutable field of an existing driver.
func (s *DriverService) Replace(ctx context.Context, id uint, in DriverInput) (*domain.Driver, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var driver *domain.Driver
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		driver, err = repos.Drivers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.applyTo(driver)
		return repos.Drivers().Update(ctx, driver)
	})
	if err != nil {
		return nil, fmt.Errorf("driver with id %d: %w", id, err)
	}
	return driver, nil
}

// Delete removes a driver together with the trips it drove.
func (s *DriverService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Trips().DeleteByDriverID(ctx, id); err != nil {
			return err
		}
		return repos.Drivers().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("driver with id %d: %w", id, err)
	}
	return nil
}

func (in DriverInput) applyTo(driver *domain.Driver) {
	driver.Name = in.Name
	driver.LicenceNumber = in.LicenceNumber
	driver.PhoneNumber = in.PhoneNumber
	driver.Rating = in.Rating
	driver.ExperienceYears = in.ExperienceYears
	driver.Status = in.Status
}
