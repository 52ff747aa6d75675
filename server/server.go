// Package server implements the control HTTP ingress of the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newswatcher/pkg/control"
	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/scheduler"
	"github.com/umputun/newswatcher/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/engine.go -pkg mocks -skip-ensure -fmt goimports . Engine

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	engine  Engine
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Engine is the request-facing side of the sync engine
type Engine interface {
	Enqueue(msg control.Message) error
	RefreshSubscriber(ctx context.Context, id int64) error
	HomeNews(ctx context.Context) ([]domain.Story, int64, error)
	FetchNow(ctx context.Context) (scheduler.RefreshStats, error)
	Status(ctx context.Context) (service.EngineStatus, error)
	ShareStory(ctx context.Context, story domain.Story, comment domain.Comment) (*domain.SharedItem, error)
	AddComment(ctx context.Context, id string, comment domain.Comment) (*domain.SharedItem, error)
	SharedItems(ctx context.Context) ([]domain.SharedItem, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, engine Engine, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		engine:  engine,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newswatcher", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /homenews", s.homeNewsHandler)
		r.HandleFunc("POST /control", s.controlHandler)
		r.HandleFunc("POST /subscribers/{id}/refresh", s.refreshSubscriberHandler)
		r.HandleFunc("POST /fetch", s.fetchHandler)
		r.HandleFunc("GET /shared", s.listSharedHandler)
		r.HandleFunc("POST /shared", s.shareStoryHandler)
		r.HandleFunc("POST /shared/{id}/comments", s.addCommentHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
