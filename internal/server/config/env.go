package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables. Unset variables
// leave the current value alone; a set but empty variable clears it.
//
// MAX_FILE_SIZE is in bytes. SHUTDOWN_TIMEOUT takes a Go duration ("15s").
// CORS_ORIGINS is a comma separated list.
func parseEnv(config *Config) error {
	strs := map[string]*string{
		"HTTP_ADDR":                   &config.EndpointAddrHTTP,
		"DATABASE_DSN":                &config.DatabaseDSN,
		"JWT_SECRET":                  &config.JWTSecret,
		"JWT_AUDIENCE":                &config.JWTAudience,
		"BLOB_BACKEND":                &config.BlobBackend,
		"S3_ROOT_USER":                &config.S3RootUser,
		"S3_ROOT_PASSWORD":            &config.S3RootPassword,
		"S3_BUCKET":                   &config.S3Bucket,
		"S3_REGION":                   &config.S3Region,
		"S3_BASE_ENDPOINT":            &config.S3BaseEndpoint,
		"GCS_CREDENTIALS_FILE":        &config.GCSCredentialsFile,
		"UPLOAD_DIR":                  &config.UploadDir,
		"LOG_BACKEND":                 &config.LogBackend,
		"LOG_FORMAT":                  &config.LogFormat,
		"TRACE_EXPORTER":              &config.TraceExporter,
		"OTEL_EXPORTER_OTLP_ENDPOINT": &config.OTLPEndpoint,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_FILE_SIZE: %w", err)
		}
		config.MaxFileSize = n
	}

	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		config.ShutdownTimeout = d
	}

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}

	return nil
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
