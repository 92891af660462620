package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.alis.build/alog"
)

const RequestIDHeader = "X-Request-Id"

const mcpSessionHeader = "Mcp-Session-Id"

type requestIDKey struct{}

// RequestID returns the id of the request ctx belongs to.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID keeps the caller's X-Request-Id or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, id))
		c.Next()
	}
}

// allowOrigins answers CORS preflights for browser clients. "*" allows
// every origin.
func allowOrigins(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders(RequestIDHeader, mcpSessionHeader, "Authorization")
	cfg.AddExposeHeaders(RequestIDHeader, mcpSessionHeader)
	return cors.New(cfg)
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		line := "| %d | %v | %s | %s %s | %s"
		args := []any{status, time.Since(start), c.ClientIP(), c.Request.Method, c.Request.URL.Path, RequestID(ctx)}
		switch {
		case status >= http.StatusInternalServerError:
			alog.Errorf(ctx, line, args...)
		case status >= http.StatusBadRequest:
			alog.Warnf(ctx, line, args...)
		default:
			alog.Infof(ctx, line, args...)
		}
	}
}

// recovery turns a panic in a handler into the error body.
func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered any) {
		fail(c, http.StatusInternalServerError, errors.Errorf("internal error: %v", recovered), nil)
	})
}
