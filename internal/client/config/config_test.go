package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PROJECTFILES_SERVER", "PROJECTFILES_TOKEN", "PROJECTFILES_TIMEOUT", "PROJECTFILES_RETRIES"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Empty(t, c.Token)
	assert.Equal(t, 60*time.Second, c.RequestTimeout)
	assert.Equal(t, uint(3), c.RetryAttempts)
	assert.NoError(t, c.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, map[string]any{
		"server_url":      "http://json:8080",
		"token":           "json-token",
		"request_timeout": "5s",
		"retry_attempts":  5,
	})

	t.Run("json over defaults", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://json:8080", cfg.ServerURL)
		assert.Equal(t, "json-token", cfg.Token)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, uint(5), cfg.RetryAttempts)
	})

	t.Run("env over json", func(t *testing.T) {
		t.Setenv("PROJECTFILES_SERVER", "http://env:9090")
		t.Setenv("PROJECTFILES_TIMEOUT", "2m")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://env:9090", cfg.ServerURL)
		assert.Equal(t, "json-token", cfg.Token)
		assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("PROJECTFILES_TOKEN", "env-token")

		cfg, err := Load(path)
		require.NoError(t, err)

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"--token", "flag-token", "--retries", "1"}))
		require.NoError(t, ApplyFlags(cfg, fs))

		assert.Equal(t, "flag-token", cfg.Token)
		assert.Equal(t, uint(1), cfg.RetryAttempts)
		assert.Equal(t, "http://json:8080", cfg.ServerURL, "unset flags must not override")
	})
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("PROJECTFILES_TIMEOUT", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "PROJECTFILES_TIMEOUT")

	t.Setenv("PROJECTFILES_TIMEOUT", "")
	t.Setenv("PROJECTFILES_RETRIES", "-1")
	_, err = Load("")
	assert.ErrorContains(t, err, "PROJECTFILES_RETRIES")
}

func TestConfigPath(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", "/etc/pf.json"}))
	assert.Equal(t, "/etc/pf.json", ConfigPath(fs))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.ServerURL = "not a url" }, "ServerURL: url"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "RequestTimeout: gt=0"},
		{"zero retries", func(c *Config) { c.RetryAttempts = 0 }, "RetryAttempts: gte=1"},
		{"too many retries", func(c *Config) { c.RetryAttempts = 50 }, "RetryAttempts: lte=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
