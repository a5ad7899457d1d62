package config

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/flagx"
)

var flagNames = []string{
	"-a", "-d", "-s", "-j", "-k", "-u", "-p", "-b", "-g", "-e",
	"-q", "-m", "-w", "-l", "-f", "-x", "-o", "-r", "-t",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-j string   expected JWT audience
//	-k string   blob backend: s3, minio or gcs
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-q string   GCS credentials file
//	-m int      max upload size per file, MiB
//	-w string   upload spool directory
//	-l string   log backend: slog or zap
//	-f string   log format: json or text
//	-x string   trace exporter: none, stdout or otlp
//	-o string   OTLP endpoint
//	-r string   comma separated CORS origins
//	-t int      shutdown timeout, seconds
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// components (-c) do not make parsing fail.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")
	fs.StringVar(&config.JWTAudience, "j", config.JWTAudience, "JWT audience")
	fs.StringVar(&config.BlobBackend, "k", config.BlobBackend, "blob backend (s3, minio, gcs)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.GCSCredentialsFile, "q", config.GCSCredentialsFile, "GCS credentials file")
	maxFileSize := fs.Int64("m", config.MaxFileSize>>20, "max file size (in MiB)")
	fs.StringVar(&config.UploadDir, "w", config.UploadDir, "upload spool directory")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json, text)")
	fs.StringVar(&config.TraceExporter, "x", config.TraceExporter, "trace exporter (none, stdout, otlp)")
	fs.StringVar(&config.OTLPEndpoint, "o", config.OTLPEndpoint, "OTLP endpoint")
	corsOrigins := fs.String("r", strings.Join(config.CORSOrigins, ","), "CORS origins (comma separated)")
	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only touch derived fields the user actually passed, so sub-MiB or
	// sub-second values from earlier layers survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			config.MaxFileSize = *maxFileSize << 20
		case "r":
			config.CORSOrigins = splitList(*corsOrigins)
		case "t":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		}
	})

	return nil
}
