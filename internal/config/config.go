// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Layer overrides on top via Load (file then env).
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// OfflineMode forces all category lookups through the bundled dataset.
	OfflineMode bool `koanf:"offline_mode"`

	// CategoriesPath points at a categories JSON file. Empty uses the
	// embedded dataset.
	CategoriesPath string `koanf:"categories_path"`

	// OfflineAnswersPath points at an offline answers JSON file. Empty
	// uses the embedded dataset.
	OfflineAnswersPath string `koanf:"offline_answers_path"`

	// DataDir is where session state is persisted. Empty keeps state
	// in memory only.
	DataDir string `koanf:"data_dir"`

	// PetScanBaseURL overrides the category search endpoint.
	PetScanBaseURL string `koanf:"petscan_base_url"`

	// PetScanTimeoutMS bounds a single category search request.
	PetScanTimeoutMS int `koanf:"petscan_timeout_ms"`

	// JoinBaseURL is the address encoded into invite QR codes.
	JoinBaseURL string `koanf:"join_base_url"`

	// BasePoints is awarded per correct answer.
	BasePoints int `koanf:"base_points"`

	// SimilarityThreshold is the minimum ratio for two answers to count
	// as the same word. Zero keeps the built-in default.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// WriteQueueSize bounds the async persistence queue.
	WriteQueueSize int `koanf:"write_queue_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		PetScanTimeoutMS: 10_000,
		JoinBaseURL:      "http://localhost:9080",
		BasePoints:       10,
		WriteQueueSize:   256,
	}
}
