package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed request parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownFilterField signals an unsupported filter option field.
	ErrUnknownFilterField = errors.New("unknown filter field")
	// ErrSearchFailed signals a failed primary vehicle search.
	ErrSearchFailed = errors.New("failed to fetch vehicle details")
	// ErrCombinationsFailed signals a failed manufacturer-model aggregation.
	ErrCombinationsFailed = errors.New("failed to fetch vehicle data")
	// ErrFilterOptionsFailed signals a failed filter option lookup.
	ErrFilterOptionsFailed = errors.New("failed to fetch filter options")
)

// InvalidInputError describes which parameter was rejected and why.
type InvalidInputError struct {
	Param  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Param, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an invalid input error for a request parameter.
func NewInvalidInput(param, reason string) error {
	return &InvalidInputError{Param: param, Reason: reason}
}
