// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     handler
// Description: WebSocket endpoint for interactive analysis
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/msto63/thing/pkg/core/logging"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WebSocketHandler handles WebSocket connections. Messages on one
// connection are answered in order.
type WebSocketHandler struct {
	service  *service.Service
	logger   *logging.Logger
	upgrader websocket.Upgrader
	maxBytes int64
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service, opts Options) *WebSocketHandler {
	if opts.Logger == nil {
		opts.Logger = logging.New("workbench-websocket")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 4 << 20
	}

	allowed := opts.AllowedOrigins
	return &WebSocketHandler{
		service: svc,
		logger:  opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || originAllowed(allowed, origin)
			},
		},
		maxBytes: opts.MaxBodyBytes,
	}
}

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`         // "parse", "tokenize", "check", "ping"
	ID      string          `json:"id,omitempty"` // echoed in the reply
	Payload json.RawMessage `json:"payload"`
}

// WSResponse represents a server message
type WSResponse struct {
	Type      string      `json:"type"` // "result", "error", "pong"
	ID        string      `json:"id,omitempty"`
	RequestID string      `json:"request_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection reads messages until the peer closes
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadLimit(h.maxBytes)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if err := h.send(conn, h.dispatch(ctx, msg)); err != nil {
			h.logger.Error("WebSocket send error", "error", err)
			return
		}
	}
}

// dispatch answers a single message
func (h *WebSocketHandler) dispatch(ctx context.Context, msg WSMessage) WSResponse {
	requestID := uuid.New().String()

	if strings.EqualFold(msg.Type, "ping") {
		return WSResponse{Type: "pong", ID: msg.ID, RequestID: requestID}
	}

	op, err := service.ParseOperation(msg.Type)
	if err != nil {
		return errorResponse(msg.ID, requestID, "unknown_type", "Unknown message type: "+msg.Type)
	}

	var req service.Request
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return errorResponse(msg.ID, requestID, "invalid_payload", "Invalid "+string(op)+" payload")
	}

	resp, err := h.service.Analyze(ctx, op, req)
	if err != nil {
		code := strings.ToLower(thingerror.GetCode(err).String())
		return errorResponse(msg.ID, requestID, code, err.Error())
	}
	resp.RequestID = requestID

	h.logger.Debug("WebSocket analysis served",
		"request_id", requestID,
		"operation", string(op),
		"valid", resp.Valid,
	)
	return WSResponse{Type: "result", ID: msg.ID, RequestID: requestID, Payload: resp}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(resp)
}

func errorResponse(id, requestID, code, message string) WSResponse {
	return WSResponse{
		Type:      "error",
		ID:        id,
		RequestID: requestID,
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
