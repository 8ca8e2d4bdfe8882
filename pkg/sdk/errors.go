package autospecs

import "github.com/kailas-cloud/autospecs/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrUnknownFilterField  = domain.ErrUnknownFilterField
	ErrSearchFailed        = domain.ErrSearchFailed
	ErrCombinationsFailed  = domain.ErrCombinationsFailed
	ErrFilterOptionsFailed = domain.ErrFilterOptionsFailed
)

// InvalidInputError tells which parameter was rejected. Use errors.As() to extract it.
type InvalidInputError = domain.InvalidInputError
