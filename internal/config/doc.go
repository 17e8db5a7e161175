// Package config loads and validates the layered application
// configuration. Values are collected from environment variables,
// command-line flags, an optional JSON file and built-in defaults, then
// merged in that priority order and validated before startup proceeds.
//
// All secrets (token signing keys, image host credentials) live here and
// are threaded into constructors explicitly; nothing reads configuration
// from ambient global state.
package config
