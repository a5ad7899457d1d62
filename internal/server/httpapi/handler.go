package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	"github.com/dmitrijs2005/projectfiles/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fileResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Filename  string    `json:"filename"`
	BlobURL   string    `json:"blob_url"`
	CreatedAt time.Time `json:"created_at"`
}

type projectResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type uploadResponse struct {
	Success bool                   `json:"success"`
	Files   []fileResponse         `json:"files"`
	Errors  []services.UploadError `json:"errors,omitempty"`
}

type parseResponse struct {
	Success bool                `json:"success"`
	File    services.ParsedFile `json:"file"`
}

type createProjectRequest struct {
	Title string `json:"title"`
}

func toFileResponse(f *models.File, _ int) fileResponse {
	return fileResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		UserID:    f.UserID,
		Filename:  f.Filename,
		BlobURL:   f.BlobURL,
		CreatedAt: f.CreatedAt,
	}
}

func toProjectResponse(p *models.Project, _ int) projectResponse {
	return projectResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// errorStatus maps service errors to HTTP statuses. Anything unknown is a 500
// carrying the underlying message.
func errorStatus(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, services.ErrProjectIDRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProjectNotFound):
		return http.StatusForbidden
	case errors.Is(err, services.ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	respondError(c, status, err.Error())
}

func (s *Server) userID(c *gin.Context) string {
	id, _ := UserIDFromContext(c.Request.Context())
	return id
}

func (s *Server) health(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Error(c.Request.Context(), "health check failed", "error", err)
		respondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}

func (s *Server) uploadFiles(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := s.readUploadForm(ctx, c.Request)
	defer form.cleanup()
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.files.Upload(ctx, s.userID(c), form.projectID, form.files)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Success: true,
		Files:   lo.Map(res.Files, toFileResponse),
		Errors:  res.Errors,
	})
}

func (s *Server) parseFile(c *gin.Context) {
	f, err := s.files.Parse(c.Request.Context(), s.userID(c), c.Param("fileId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, parseResponse{Success: true, File: *f})
}

func (s *Server) listFiles(c *gin.Context) {
	items, err := s.files.List(c.Request.Context(), s.userID(c), c.Query("projectId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(items, toFileResponse))
}

func (s *Server) listProjects(c *gin.Context) {
	items, err := s.projects.List(c.Request.Context(), s.userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(items, toProjectResponse))
}

func (s *Server) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.projects.Create(c.Request.Context(), s.userID(c), req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(p, 0))
}
