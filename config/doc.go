// Package config loads and validates the application configuration from
// a YAML file with environment overrides.
package config
