package repository

import "errors"

// Sentinel kinds for override store errors.
var (
	ErrOpenStore        = errors.New("open override store failed")
	ErrWriteEntry       = errors.New("write store entry failed")
	ErrEventNotFound    = errors.New("event not found in local store")
	ErrCategoryNotFound = errors.New("category not found in local store")
)
