package store

import "errors"

// ErrStorage matches every error caused by the underlying storage engine.
var ErrStorage = errors.New("storage unavailable")

// StorageError wraps a failure of the storage engine.
// It is fatal to the request that triggered it.
type StorageError struct {
	// Op names the store operation, e.g. "record vote".
	Op string

	// Err is the engine error.
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrStorage so callers can test the category
// without unwrapping.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
