// Package server exposes the tools over HTTP with gin and over MCP with
// mcp-go. Both surfaces are built from the same tools.Toolbox.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"go.alis.build/alog"
	"golang.org/x/sync/errgroup"

	"github.com/negokaz/office-server/internal/tools"
)

const Name = "office-server"

const shutdownTimeout = 10 * time.Second

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MCP mounts the streamable HTTP MCP endpoint at /mcp.
	MCP bool
	// CORSOrigins lists the browser origins allowed to call the server.
	// Empty disables CORS.
	CORSOrigins []string
}

type Server struct {
	version string
	options Options
	toolbox *tools.Toolbox
	mcp     *server.StreamableHTTPServer
	engine  *gin.Engine
}

// NewMCPServer registers every tool on a new MCP server.
func NewMCPServer(version string, toolbox *tools.Toolbox) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	toolbox.Register(s)
	return s
}

// ServeStdio serves MCP on stdin and stdout until they are closed.
func ServeStdio(version string, toolbox *tools.Toolbox) error {
	return server.ServeStdio(NewMCPServer(version, toolbox))
}

func New(version string, toolbox *tools.Toolbox, options Options) *Server {
	s := &Server{
		version: version,
		options: options,
		toolbox: toolbox,
	}
	if options.MCP {
		s.mcp = server.NewStreamableHTTPServer(NewMCPServer(version, toolbox))
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(requestID(), accessLog(), recovery())
	if len(s.options.CORSOrigins) > 0 {
		engine.Use(allowOrigins(s.options.CORSOrigins))
	}
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, errors.Errorf("no endpoint %s %s", c.Request.Method, c.Request.URL.Path), nil)
	})
	engine.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, errors.Errorf("%s is not allowed on %s", c.Request.Method, c.Request.URL.Path), nil)
	})

	engine.GET("/health", s.health)
	engine.GET("/tools", s.listTools)
	for _, tool := range s.toolbox.Tools() {
		engine.Handle(tool.Method, tool.Path, handle(tool))
	}
	if s.mcp != nil {
		engine.Any("/mcp", gin.WrapH(s.mcp))
	}
	return engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.options.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		alog.Infof(ctx, "%s %s listening on http://%s", Name, s.version, s.options.Addr)
		if s.mcp != nil {
			alog.Infof(ctx, "MCP endpoint: http://%s/mcp", s.options.Addr)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		alog.Infof(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.mcp != nil {
			if err := s.mcp.Shutdown(shutdownCtx); err != nil {
				alog.Warnf(shutdownCtx, "MCP shutdown: %v", err)
			}
		}
		return errors.Wrap(srv.Shutdown(shutdownCtx), "HTTP shutdown failed")
	})
	return g.Wait()
}

type health struct {
	Success      bool            `json:"success"`
	Status       string          `json:"status"`
	Version      string          `json:"version"`
	Applications map[string]bool `json:"applications"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, health{
		Success: true,
		Status:  "running",
		Version: s.version,
		Applications: map[string]bool{
			"word":       s.toolbox.Word.Launched(),
			"excel":      s.toolbox.Excel.Launched(),
			"powerpoint": s.toolbox.PowerPoint.Launched(),
		},
	})
}

type endpoint struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

func (s *Server) listTools(c *gin.Context) {
	list := []endpoint{}
	for _, tool := range s.toolbox.Tools() {
		list = append(list, endpoint{Name: tool.Name, Method: tool.Method, Path: tool.Path, Description: tool.Description})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tools": list})
}
