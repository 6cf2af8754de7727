// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// DedupeSize sets the size of the duplicate-submission cache.
	DedupeSize int `koanf:"dedupe_size"`

	// QueryLogging enables SQL statement logging in the store.
	QueryLogging bool `koanf:"query_logging"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":9080",
		DBPath:     "arena.db",
		DedupeSize: 50_000,
	}
}
