package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrReferentialIntegrity is returned when a write references a row that does not exist.
	ErrReferentialIntegrity = errors.New("referenced entity does not exist")
)
