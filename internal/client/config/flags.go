package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags adds the connection flags to fs. Their defaults are zero on
// purpose: only flags the user actually set override the loaded config.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to JSON config file")
	fs.String("server", "", "base URL of the projectfiles API")
	fs.String("token", "", "bearer token")
	fs.Duration("timeout", 0, "per-request timeout")
	fs.Uint("retries", 0, "attempts for read-only requests")
}

// ConfigPath returns the --config value registered by RegisterFlags.
func ConfigPath(fs *pflag.FlagSet) string {
	path, _ := fs.GetString("config")
	return path
}

// ApplyFlags copies every flag the user set on fs into cfg.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed("server") {
		if cfg.ServerURL, err = fs.GetString("server"); err != nil {
			return err
		}
	}
	if fs.Changed("token") {
		if cfg.Token, err = fs.GetString("token"); err != nil {
			return err
		}
	}
	if fs.Changed("timeout") {
		if cfg.RequestTimeout, err = fs.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if fs.Changed("retries") {
		if cfg.RetryAttempts, err = fs.GetUint("retries"); err != nil {
			return err
		}
	}
	return nil
}
