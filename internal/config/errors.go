package config

import (
	"errors"
)

// Sentinel kinds for configuration loading, matchable with errors.Is.
var (
	// ErrInvalidConfig marks a loaded configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure to read or decode a config source.
	ErrLoadConfig = errors.New("load config failed")
)
