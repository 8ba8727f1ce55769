// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached
type ErrStoreUnavailable struct {
	Err error
}

func (e *ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error { return e.Err }

// ErrStoreError covers every other retrieval fault (query, scan, mapping)
type ErrStoreError struct {
	Err error
}

func (e *ErrStoreError) Error() string {
	return fmt.Sprintf("store error: %v", e.Err)
}

func (e *ErrStoreError) Unwrap() error { return e.Err }

// Helper constructors
func NewStoreUnavailable(err error) error {
	return &ErrStoreUnavailable{Err: err}
}

func NewStoreError(err error) error {
	return &ErrStoreError{Err: err}
}

const (
	KindStoreUnavailable = "store_unavailable"
	KindStoreError       = "store_error"
	KindUnknown          = "unknown"
)

// Kind names the category of err for logs and metrics.
func Kind(err error) string {
	var unavailable *ErrStoreUnavailable
	var storeErr *ErrStoreError
	switch {
	case errors.As(err, &unavailable):
		return KindStoreUnavailable
	case errors.As(err, &storeErr):
		return KindStoreError
	default:
		return KindUnknown
	}
}
