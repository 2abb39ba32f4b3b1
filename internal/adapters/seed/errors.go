package seed

import "errors"

// Sentinel kinds for seed loading errors.
var (
	// ErrFetchFailure marks any failure to retrieve or decode the seed
	// document. Retryable; never fatal to the service.
	ErrFetchFailure = errors.New("seed fetch failed")
)
