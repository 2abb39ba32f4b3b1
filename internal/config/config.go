// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and environment variables on top.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeedURL locates the read-only seed document: an http(s) URL or a
	// local file path.
	SeedURL string `koanf:"seed_url"`

	// SeedTimeoutMS bounds a single seed fetch.
	SeedTimeoutMS int `koanf:"seed_timeout_ms"`

	// StorePath is the sqlite file holding the local override store.
	StorePath string `koanf:"store_path"`

	// RefreshCron optionally schedules periodic seed refreshes using a
	// cron expression. Empty disables scheduled refresh.
	RefreshCron string `koanf:"refresh_cron"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8080",
		SeedURL:       "events.json",
		SeedTimeoutMS: 15_000,
		StorePath:     "overrides.db",
		RefreshCron:   "",
	}
}
