// Package config loads and validates the subsrs TOML configuration.
// Every field has a usable default; a missing config file is not an error.
package config
