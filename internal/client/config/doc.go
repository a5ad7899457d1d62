// Package config loads runtime configuration for the projectfiles CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. Environment variables (PROJECTFILES_*), after an optional .env file.
//  4. Command-line flags registered with RegisterFlags, when set.
//
// Supported flags
//
//	--server string    base URL of the projectfiles API
//	--token string     bearer token
//	--timeout duration per-request timeout
//	--retries int      attempts for read-only requests
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token": "eyJhbGciOi...",
//	  "request_timeout": "30s",
//	  "retry_attempts": 3
//	}
package config
