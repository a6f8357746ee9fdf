package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAccount indicates an insert collided with an existing sequence id or card number
	ErrDuplicateAccount = errors.New("duplicate account")
)
