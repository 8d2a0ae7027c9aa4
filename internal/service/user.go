package service

import (
	"context"
	"fmt"
	"time"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// UserService handles user operations.
type UserService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(uow repository.UnitOfWork) *UserService {
	return &UserService{uow: uow, now: time.Now}
}

// WithClock replaces the clock used to stamp registration dates.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// UserInput contains every mutable user field.
type UserInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Rating      float64
}

// Get retrieves a user with its trips.
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var user *domain.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("user with id %d: %w", id, err)
	}
	return user, nil
}

// List retrieves all users with their trips.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		users, err = repos.Users().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create registers a new user. The registration date is the current date.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	user := &domain.User{
		Name:             in.Name,
		PhoneNumber:      in.PhoneNumber,
		Email:            in.Email,
		Rating:           in.Rating,
		RegistrationDate: truncateToDate(s.now()),
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Replace overwrites every mutable field of an existing user.
func (s *UserService) Replace(ctx context.Context, id uint, in UserInput) (*domain.User, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}

	var user *domain.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Name = in.Name
		user.PhoneNumber = in.PhoneNumber
		user.Email = in.Email
		user.Rating = in.Rating

		return repos.Users().Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("user with id %d: %w", id, err)
	}
	return user, nil
}

// Delete removes a user together with the trips it owns.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Trips().DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return repos.Users().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("user with id %d: %w", id, err)
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
