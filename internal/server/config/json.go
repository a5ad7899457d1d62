package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/projectfiles/internal/flagx"
	"github.com/dmitrijs2005/projectfiles/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// ShutdownTimeout uses timex.Duration so both "10s" and integer nanoseconds
// are accepted.
//
// Only keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP   string          `json:"endpoint_addr_http"`
	DatabaseDSN        string          `json:"database_dsn"`
	JWTSecret          string          `json:"jwt_secret"`
	JWTAudience        string          `json:"jwt_audience"`
	BlobBackend        string          `json:"blob_backend"`
	S3RootUser         string          `json:"s3_root_user"`
	S3RootPassword     string          `json:"s3_root_password"`
	S3Bucket           string          `json:"s3_bucket"`
	S3Region           string          `json:"s3_region"`
	S3BaseEndpoint     string          `json:"s3_base_endpoint"`
	GCSCredentialsFile string          `json:"gcs_credentials_file"`
	MaxFileSize        int64           `json:"max_file_size"`
	UploadDir          string          `json:"upload_dir"`
	LogBackend         string          `json:"log_backend"`
	LogFormat          string          `json:"log_format"`
	TraceExporter      string          `json:"trace_exporter"`
	OTLPEndpoint       string          `json:"otlp_endpoint"`
	CORSOrigins        []string        `json:"cors_origins"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.JWTAudience, c.JWTAudience)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.GCSCredentialsFile, c.GCSCredentialsFile)
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.TraceExporter, c.TraceExporter)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)

	if c.MaxFileSize > 0 {
		config.MaxFileSize = c.MaxFileSize
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
