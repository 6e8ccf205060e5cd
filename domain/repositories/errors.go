package repositories

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is matched with errors.Is when the document store cannot be reached
var ErrStoreUnavailable = errors.New("store unavailable")

// StoreError wraps a driver failure raised by an adapter
type StoreError struct {
	Op          string
	Unavailable bool
	Err         error
}

func (e *StoreError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrStoreUnavailable, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable && e.Unavailable
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func NewUnavailableError(op string, err error) error {
	return &StoreError{Op: op, Unavailable: true, Err: err}
}
