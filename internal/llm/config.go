// Package llm provides the completion service client and helpers for turning
// free-form completions into validated structured data.
package llm

import "time"

const (
	// DefaultTemperature keeps completions close to deterministic
	DefaultTemperature float32 = 0.1
	// DefaultTimeout bounds a single completion call
	DefaultTimeout = 90 * time.Second
)

// Config holds per-call generation settings shared by every request-scoped client.
// It carries no credential and no model; both arrive with each request.
type Config struct {
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the default generation settings
func DefaultConfig() *Config {
	return &Config{
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
}
