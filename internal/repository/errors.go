package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates an insert collided with an existing key.
	ErrDuplicate = errors.New("duplicate key")

	// ErrVersionConflict indicates a compare-and-swap lost against a
	// concurrent writer; the caller should re-read and retry.
	ErrVersionConflict = errors.New("version conflict")
)
