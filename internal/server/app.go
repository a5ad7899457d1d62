// Package server wires the project files service together and runs it:
// logger, tracer provider, database and migrations, object store, services
// and the HTTP API, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/projectfiles/internal/logging"
	"github.com/dmitrijs2005/projectfiles/internal/server/auth"
	"github.com/dmitrijs2005/projectfiles/internal/server/blobstore"
	"github.com/dmitrijs2005/projectfiles/internal/server/config"
	"github.com/dmitrijs2005/projectfiles/internal/server/httpapi"
	"github.com/dmitrijs2005/projectfiles/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/projectfiles/internal/server/services"
	"github.com/dmitrijs2005/projectfiles/internal/server/tracing"
	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	tracerProvider *sdktrace.TracerProvider
	httpServer     *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	tp, err := tracing.Init(ctx, c.TraceExporter, c.OTLPEndpoint, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, tracerProvider: tp}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := blobstore.New(ctx, c)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	verifier := auth.NewJWTVerifier([]byte(c.JWTSecret), c.JWTAudience)
	ps := services.NewProjectService(db, rm, logger)
	fs := services.NewFileService(db, rm, store, logger)

	gin.SetMode(gin.ReleaseMode)
	app.httpServer = httpapi.NewServer(c, logger, verifier, ps, fs, db)

	return app, nil
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "blob_backend", app.config.BlobBackend)

	err := app.httpServer.Run(ctx)

	app.logger.Info(ctx, "Stopping app...")
	app.close(context.WithoutCancel(ctx))

	return err
}

func (app *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, app.config.ShutdownTimeout)
	defer cancel()

	var errs []error
	if app.tracerProvider != nil {
		if err := app.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
