// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() with defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite file backing race persistence. Empty
	// disables persistence.
	DBPath string `koanf:"db_path"`

	// ReportDir is where rendered race reports are written.
	ReportDir string `koanf:"report_dir"`

	// PoolLength is the course length in race units. The race distance
	// divided by this gives the nominal lap count.
	PoolLength float64 `koanf:"pool_length"`

	// TouchAllowance is the hand-reach subtracted from the overwater
	// distance at each wall.
	TouchAllowance float64 `koanf:"touch_allowance"`

	// DebounceWindow is the minimum spacing in seconds between lap
	// boundaries; closer key presses collapse to one.
	DebounceWindow float64 `koanf:"debounce_window"`

	// MaxListLimit caps GET /races?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// MaxProcs caps GOMAXPROCS; zero keeps the runtime default.
	MaxProcs int `koanf:"max_procs"`
}

// Defaults for the short-course-yards capture rig this tool grew up on.
const (
	defaultAddr           = ":9090"
	defaultReportDir      = "reports"
	defaultPoolLength     = 25.0
	defaultTouchAllowance = 0.5
	defaultDebounce       = 0.1
	defaultMaxListLimit   = 100
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           defaultAddr,
		DBPath:         "swimsplit.db",
		ReportDir:      defaultReportDir,
		PoolLength:     defaultPoolLength,
		TouchAllowance: defaultTouchAllowance,
		DebounceWindow: defaultDebounce,
		MaxListLimit:   defaultMaxListLimit,
		MaxProcs:       runtime.NumCPU(),
	}
}
