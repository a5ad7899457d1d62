// Package httpapi exposes the project and file services over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/logging"
	"github.com/dmitrijs2005/projectfiles/internal/server/auth"
	"github.com/dmitrijs2005/projectfiles/internal/server/config"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	"github.com/dmitrijs2005/projectfiles/internal/server/services"
	"github.com/gin-gonic/gin"
)

// ProjectService is the part of services.ProjectService the API uses.
type ProjectService interface {
	Create(ctx context.Context, userID, title string) (*models.Project, error)
	List(ctx context.Context, userID string) ([]*models.Project, error)
}

// FileService is the part of services.FileService the API uses.
type FileService interface {
	Upload(ctx context.Context, userID, projectID string, files []services.UploadFile) (*services.UploadResult, error)
	Parse(ctx context.Context, userID, fileID string) (*services.ParsedFile, error)
	List(ctx context.Context, userID, projectID string) ([]*models.File, error)
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address         string
	maxFileSize     int64
	uploadDir       string
	corsOrigins     []string
	shutdownTimeout time.Duration

	projects ProjectService
	files    FileService
	verifier auth.IdentityVerifier
	db       Pinger
	logger   logging.Logger

	engine *gin.Engine
}

func NewServer(c *config.Config, l logging.Logger, v auth.IdentityVerifier, ps ProjectService, fs FileService, db Pinger) *Server {
	s := &Server{
		address:         c.EndpointAddrHTTP,
		maxFileSize:     c.MaxFileSize,
		uploadDir:       c.UploadDir,
		corsOrigins:     c.CORSOrigins,
		shutdownTimeout: c.ShutdownTimeout,
		projects:        ps,
		files:           fs,
		verifier:        v,
		db:              db,
		logger:          l.With("module", "http_server"),
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
