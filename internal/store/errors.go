package store

import (
	"errors"
	"fmt"
)

// PersistenceError wraps a failure in the snapshot store. Callers treat it as
// non-fatal: the in-memory composition stays authoritative.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("snapshot store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AsPersistenceError unwraps err into a *PersistenceError if possible.
func AsPersistenceError(err error) (*PersistenceError, bool) {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
