package db

import "errors"

// Sentinel errors for storage operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrIndexNotFound     = errors.New("db: index not found")
	// ErrEngineUnavailable marks transport failures and 5xx replies, which are worth retrying.
	ErrEngineUnavailable = errors.New("db: engine unavailable")
)

// Op names used for error context.
const (
	OpSearch = "SEARCH"
	OpPing   = "PING"
	OpGet    = "GET"
	OpSet    = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
