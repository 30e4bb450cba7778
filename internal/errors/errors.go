// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCustomerID = errors.New("customer id not specified")
	// ErrWorkerUnreachable wraps transport faults talking to the worker.
	ErrWorkerUnreachable = errors.New("worker unreachable")
	// ErrMalformedReply is returned when the worker body cannot be decoded or lacks status_code.
	ErrMalformedReply = errors.New("malformed worker reply")
	// ErrEmptyStatus is returned by the envelope builder for blank status or status_code.
	ErrEmptyStatus = errors.New("status and status_code must not be empty")
)

// ErrCustomerNotFound means the record store has no row for the customer.
type ErrCustomerNotFound struct {
	CustomerID string
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %q not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id string) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// LookupError is any failure loading customer data from the record store.
type LookupError struct {
	CustomerID string
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup customer %q: %v", e.CustomerID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func NewLookupError(id string, err error) error {
	return &LookupError{CustomerID: id, Err: err}
}
