package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/projectfiles/internal/server/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		gin.Recovery(),
		otelgin.Middleware(tracing.ServiceName),
		s.requestLogger(),
		cors.New(s.corsConfig()),
	)

	r.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Not found")
	})

	r.GET("/healthz", s.health)

	api := r.Group("/api", s.requireAuth())
	{
		api.POST("/files/upload", s.uploadFiles)
		api.POST("/files/:fileId/parse", s.parseFile)
		api.GET("/files/list", s.listFiles)

		api.GET("/projects/list", s.listProjects)
		api.POST("/projects", s.createProject)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowOrigins:     s.corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	// cors.New panics on an empty origin list; no origins means no cross-site callers.
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cfg
}
