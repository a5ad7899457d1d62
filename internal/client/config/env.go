package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with PROJECTFILES_* variables that are set.
//
//	PROJECTFILES_SERVER   base URL of the API
//	PROJECTFILES_TOKEN    bearer token
//	PROJECTFILES_TIMEOUT  request timeout, Go duration syntax
//	PROJECTFILES_RETRIES  attempts for read-only requests
func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("PROJECTFILES_SERVER"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("PROJECTFILES_TOKEN"); ok && v != "" {
		cfg.Token = v
	}
	if v, ok := os.LookupEnv("PROJECTFILES_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PROJECTFILES_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv("PROJECTFILES_RETRIES"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("PROJECTFILES_RETRIES: %w", err)
		}
		cfg.RetryAttempts = uint(n)
	}
	return nil
}
