// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     handler
// Description: REST endpoints of the workbench analysis service
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/msto63/thing/pkg/core/health"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/msto63/thing/pkg/core/version"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// healthTimeout bounds one run of the health probes
const healthTimeout = 2 * time.Second

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Grammar   string `json:"grammar"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Options configures the handlers
type Options struct {
	// AllowedOrigins for CORS and WebSocket upgrades; empty allows all
	AllowedOrigins []string

	// MaxBodyBytes bounds request bodies (default: 4 MiB)
	MaxBodyBytes int64

	Logger *logging.Logger
}

// Handler handles HTTP requests for the workbench API
type Handler struct {
	service *service.Service
	health  *health.Registry
	logger  *logging.Logger
	options Options
}

// NewHandler creates a new API handler
func NewHandler(svc *service.Service, registry *health.Registry, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logging.New("workbench-handler")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 4 << 20
	}
	return &Handler{
		service: svc,
		health:  registry,
		logger:  opts.Logger,
		options: opts,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setCORS(w, r)
	requestID := RequestID(r)
	w.Header().Set(HeaderRequestID, requestID)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		h.handleRoot(w, r)
	case "health":
		h.handleHealth(w, r)
	case "version":
		h.handleVersion(w, r)
	case "parse":
		h.handleAnalyze(w, r, requestID, service.OpParse)
	case "tokenize":
		h.handleAnalyze(w, r, requestID, service.OpTokenize)
	case "check":
		h.handleAnalyze(w, r, requestID, service.OpCheck)
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Unknown endpoint", r.URL.Path, requestID)
	}
}

// RequestID returns the caller supplied request id or a new one
func RequestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderRequestID)); id != "" {
		return id
	}
	return uuid.New().String()
}

func (h *Handler) setCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	switch {
	case len(h.options.AllowedOrigins) == 0:
		w.Header().Set("Access-Control-Allow-Origin", "*")
	case origin != "" && originAllowed(h.options.AllowedOrigins, origin):
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)
}

// originAllowed matches origin against the configured list; "*" allows any
func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// handleRoot lists the endpoints
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "thing workbench",
		"version": version.Workbench,
		"endpoints": []string{
			"GET  /api/v1/health",
			"GET  /api/v1/version",
			"POST /api/v1/parse",
			"POST /api/v1/tokenize",
			"POST /api/v1/check",
			"GET  /api/v1/ws",
		},
	}
	h.writeJSON(w, http.StatusOK, info)
}

// handleHealth runs the health registry
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	report := h.health.Check(ctx)
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

// handleVersion reports build information
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "", "")
		return
	}

	h.writeJSON(w, http.StatusOK, VersionResponse{
		Service:   "workbench",
		Version:   version.Workbench,
		Grammar:   version.Grammar,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	})
}

// handleAnalyze decodes a service.Request and runs op on it
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request, requestID string, op service.Operation) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", "", requestID)
		return
	}

	var req service.Request
	body := http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, strings.ToLower(thingerror.CodeInputTooLarge.String()),
				"Request body too large", err.Error(), requestID)
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid request body", err.Error(), requestID)
		return
	}

	resp, err := h.service.Analyze(r.Context(), op, req)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}
	resp.RequestID = requestID

	h.logger.Debug("Analysis served",
		"request_id", requestID,
		"operation", string(op),
		"valid", resp.Valid,
		"cached", resp.Cached,
	)
	h.writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps coded errors to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID string) {
	code := thingerror.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.With("request_id", requestID).LogError(err)
	}
	h.writeError(w, status, strings.ToLower(code.String()), err.Error(), "", requestID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Response encoding failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details, requestID string) {
	resp := ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: requestID,
	}
	h.writeJSON(w, status, resp)
}
