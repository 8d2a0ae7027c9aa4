package repository

import "context"

// Repositories groups the repositories bound to one unit of work.
type Repositories interface {
	Users() UserRepository
	Drivers() DriverRepository
	Trips() TripRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise, including on panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
