package postgres

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"tripbook/internal/repository"
)

// UnitOfWork is a gorm implementation of repository.UnitOfWork.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work factory over db.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn in a read-committed transaction with repositories bound to it.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	return translateError(err)
}

// txRepositories hands out repositories that share one transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Users() repository.UserRepository     { return NewUserRepository(r.tx) }
func (r *txRepositories) Drivers() repository.DriverRepository { return NewDriverRepository(r.tx) }
func (r *txRepositories) Trips() repository.TripRepository     { return NewTripRepository(r.tx) }

// Ensure interfaces are satisfied.
var (
	_ repository.UnitOfWork       = (*UnitOfWork)(nil)
	_ repository.UserRepository   = (*UserRepository)(nil)
	_ repository.DriverRepository = (*DriverRepository)(nil)
	_ repository.TripRepository   = (*TripRepository)(nil)
)
