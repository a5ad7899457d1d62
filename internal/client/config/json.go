package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/projectfiles/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointer fields tell "absent" apart from zero values.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	Token          string          `json:"token"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RetryAttempts  *uint           `json:"retry_attempts"`
}

// parseJson overlays cfg with the values present in the JSON file at path.
// An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}

	return nil
}
