package database

import (
	"errors"
	"fmt"
)

// ErrShelfExists is returned when creating a shelf whose name is already
// taken (case-insensitively).
var ErrShelfExists = errors.New("shelf name already exists")

// PersistenceError wraps a storage backend fault. It is never retried here;
// callers surface it to the user and must not assume partial success.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
