// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, and NASDA_ environment variables.
// It provides type-safe access to the settings the stores and services need
// while keeping configuration details separate from business logic.
package config
