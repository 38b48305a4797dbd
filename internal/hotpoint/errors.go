package hotpoint

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching against the typed errors below
var (
	ErrValidation  = errors.New("validation failed")
	ErrIndex       = errors.New("index out of range")
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError rejects an add before any state changes
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid hotpoint: " + e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IndexError reports a stale or out-of-range positional delete
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("no hotpoint at index %d: list is empty", e.Index)
	}
	return fmt.Sprintf("no hotpoint at index %d: valid range is 0-%d", e.Index, e.Len-1)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// PersistenceError wraps a store failure. The in-memory change it
// accompanies has already been applied.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
