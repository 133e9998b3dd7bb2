package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server exposes a task collection over a JSON API
type Server struct {
	tasks *store.Collection
	echo  *echo.Echo
}

// New creates a new server over tasks
func New(tasks *store.Collection) *Server {
	if tasks == nil {
		tasks = store.New()
	}

	s := &Server{tasks: tasks}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger)
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.DELETE("/tasks", s.handleDeleteAllTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PATCH("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/star", s.handleToggleStar)

	api.GET("/search", s.handleGetSearch)
	api.PUT("/search", s.handleSetSearch)

	s.echo = e
}

// Tasks returns the collection served by s
func (s *Server) Tasks() *store.Collection {
	return s.tasks
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server. It returns nil after Shutdown or Close.
func (s *Server) Start(addr string) error {
	logger.Info("API server listening", logger.F("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Close stops the server immediately
func (s *Server) Close() error {
	return s.echo.Close()
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleError renders echo errors with the same body shape as handler errors
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	} else {
		logger.Error("Unhandled API error", logger.F("error", err), logger.F("uri", c.Request().RequestURI))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Error: msg})
	}
	if err != nil {
		logger.Error("Failed to write error response", logger.F("error", err))
	}
}
