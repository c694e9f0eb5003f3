// Package config holds process-wide configuration read once at startup.
//
// The server is configured entirely through environment variables:
//
//	GEMINI_API_KEY      Gemini API credential (required)
//	DEFAULT_OUTPUT_DIR  directory for generated files (optional, "./output")
//
// The resulting Config is immutable after Load and is passed by reference
// to every operation; nothing re-reads the environment per call.
package config

import (
	"errors"
	"os"
)

// DefaultOutputDir is used when DEFAULT_OUTPUT_DIR is unset.
const DefaultOutputDir = "./output"

// ErrAPIKeyMissing indicates GEMINI_API_KEY was not set in the environment.
var ErrAPIKeyMissing = errors.New("GEMINI_API_KEY environment variable is not set")

// Config holds the server configuration.
type Config struct {
	// APIKey is the Gemini API credential.
	APIKey string

	// OutputDir is where generated and transformed images are written
	// when the caller does not supply an explicit output path.
	OutputDir string
}

// Load reads configuration from the environment.
func Load() *Config {
	outputDir := os.Getenv("DEFAULT_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &Config{
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		OutputDir: outputDir,
	}
}

// Validate returns an error if required settings are missing.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyMissing
	}
	return nil
}
