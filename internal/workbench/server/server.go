// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     server
// Description: HTTP server hosting the workbench REST and WebSocket API
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/thing/internal/workbench/handler"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/msto63/thing/pkg/core/config"
	"github.com/msto63/thing/pkg/core/health"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/msto63/thing/pkg/core/version"
)

// Server is the workbench HTTP server
type Server struct {
	httpServer *http.Server
	service    *service.Service
	health     *health.Registry
	logger     *logging.Logger
	config     Config
	listener   net.Listener
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string

	MaxInputLength  int
	MaxDepth        int
	CacheTTL        time.Duration
	CacheMaxEntries int

	Logger *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig derives the server configuration from the application config
func FromConfig(cfg *config.Config) Config {
	return Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		MaxInputLength:  cfg.Parser.MaxInputLength,
		MaxDepth:        cfg.Parser.MaxDepth,
		CacheTTL:        cfg.Server.CacheTTL.Duration,
		CacheMaxEntries: cfg.Server.CacheMaxEntries,
	}
}

// New creates a new workbench server
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("workbench-server")
	}

	svc := service.New(service.Config{
		MaxInputLength:  cfg.MaxInputLength,
		MaxDepth:        cfg.MaxDepth,
		CacheTTL:        cfg.CacheTTL,
		CacheMaxEntries: cfg.CacheMaxEntries,
		Logger:          logger,
	})

	healthRegistry := health.NewRegistry("workbench", version.Workbench)
	healthRegistry.Register("http", health.AlwaysHealthy())
	healthRegistry.Register("grammar", func(ctx context.Context) health.CheckResult {
		if err := svc.SelfTest(ctx); err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: "Grammar probe parsed cleanly"}
	})
	if cfg.CacheMaxEntries > 0 {
		// a full cache evicts on every insert
		healthRegistry.Register("cache", health.ThresholdCheck(cfg.CacheMaxEntries-1, func() int {
			return svc.CacheStats().Size
		}))
	}

	opts := handler.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   bodyLimit(cfg.MaxInputLength),
		Logger:         logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/ws", handler.NewWebSocketHandler(svc, opts))
	h := handler.NewHandler(svc, healthRegistry, opts)
	mux.Handle("/", h)
	mux.Handle("/api/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		service:    svc,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}
}

// bodyLimit leaves room for JSON escaping around the source
func bodyLimit(maxInput int) int64 {
	if maxInput <= 0 {
		return 0
	}
	return int64(maxInput)*2 + 4096
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"request_id", wrapper.Header().Get(handler.HeaderRequestID),
			"duration", time.Since(start).String(),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack implements http.Hijacker for WebSocket upgrades
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Start listens and serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Starting workbench",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// StartAsync binds the listener and serves in the background. Binding
// errors are returned; port 0 picks a free port, see Address.
func (s *Server) StartAsync() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.logger.Info("Starting workbench (async)", "address", listener.Addr().String())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping workbench")
	defer s.service.Close()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the bound address once started, else the configured one
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Handler returns the root handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
