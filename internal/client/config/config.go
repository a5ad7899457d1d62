package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the projectfiles CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API, e.g. http://127.0.0.1:8080.
//   - Token: bearer token sent with every API call.
//   - RequestTimeout: per-request timeout; uploads of large folders may need more.
//   - RetryAttempts: how many times a read-only request is tried.
type Config struct {
	ServerURL      string        `validate:"required,url"`
	Token          string
	RequestTimeout time.Duration `validate:"gt=0"`
	RetryAttempts  uint          `validate:"gte=1,lte=10"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 60 * time.Second
	c.RetryAttempts = 3
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Load constructs a Config from defaults, then the JSON file at path (if
// path is not empty), then the environment. Flags are applied afterwards by
// the caller with ApplyFlags.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
