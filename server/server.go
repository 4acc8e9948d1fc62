package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/ignitor/component"
	"github.com/kbukum/ignitor/logger"
	"github.com/kbukum/ignitor/server/endpoint"
	"github.com/kbukum/ignitor/server/middleware"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server is an HTTP server backed by Gin and served over h2c. Plain
// http.Handlers can be mounted next to the gin routes with Handle.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	name       string
	log        *logger.Logger

	mu       sync.RWMutex
	listener net.Listener
}

// New creates a server with the standard middleware installed in order:
// recovery, request id, tracing, CORS and request logging.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log = log.WithComponent("server")

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.CORS(cfg.CORS),
		middleware.RequestLogger(log),
	)
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log,
	}
}

// GinEngine returns the Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts handler for every method at the gin route path, behind
// the standard middleware.
func (s *Server) Handle(path string, handler http.Handler) {
	s.engine.Any(path, gin.WrapH(handler))
	s.log.Debug("Handler mounted", map[string]interface{}{"route": path})
}

// RegisterDefaultEndpoints registers /health, /alive and /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker component.HealthChecker) {
	endpoint.Register(s.engine, serviceName, checker)
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{logger.FieldError: err.Error()})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{"addr": listener.Addr().String()})
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()

	s.log.Info("HTTP server shut down")
	return nil
}

// Addr returns the bound address while serving, or the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Listening reports whether the server has a bound listener.
func (s *Server) Listening() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener != nil
}
