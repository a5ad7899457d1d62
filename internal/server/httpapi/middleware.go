package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the authenticated user stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(header string) string {
	if len(header) <= len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(common.BearerPrefix):])
}

// requireAuth resolves the bearer token to a user id and puts it into the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := bearerToken(c.GetHeader(common.AuthorizationHeader))
		if token == "" {
			abortError(c, http.StatusUnauthorized, "No token provided")
			return
		}

		userID, err := s.verifier.Verify(ctx, token)
		if err != nil {
			s.logger.Warn(ctx, "authentication failed", "error", err)
			abortError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(ctx, userIDKey, userID))
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.HasTraceID() {
			fields = append(fields, "trace_id", spanCtx.TraceID().String())
		}
		if userID, ok := UserIDFromContext(ctx); ok {
			fields = append(fields, "user_id", userID)
		}

		switch {
		case status >= 500:
			s.logger.Error(ctx, "HTTP request", fields...)
		case status >= 400:
			s.logger.Warn(ctx, "HTTP request", fields...)
		default:
			s.logger.Info(ctx, "HTTP request", fields...)
		}
	}
}
