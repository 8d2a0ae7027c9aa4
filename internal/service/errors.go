package service

import "errors"

var (
	// ErrInvalidID is returned when an entity ID is zero.
	ErrInvalidID = errors.New("invalid id")
)
