package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	wsInfra "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
	"github.com/gorilla/websocket"
)

// WebSocketHandler обрабатывает WebSocket connections.
// Каждое соединение получает собственную сессию с начальным состоянием
type WebSocketHandler struct {
	hub            *wsInfra.Hub
	rules          *binding.Table
	initial        binding.State
	renderer       port.ChartRenderer
	logger         *logger.Logger
	allowedOrigins map[string]struct{}
	upgrader       websocket.Upgrader
}

// NewWebSocketHandler создает новый handler
func NewWebSocketHandler(
	hub *wsInfra.Hub,
	rules *binding.Table,
	initial binding.State,
	renderer port.ChartRenderer,
	allowedOrigins []string,
	logger *logger.Logger,
) *WebSocketHandler {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	handler := &WebSocketHandler{
		hub:            hub,
		rules:          rules,
		initial:        initial,
		renderer:       renderer,
		logger:         logger,
		allowedOrigins: originMap,
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     handler.checkOrigin,
	}

	return handler
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return false
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	normalized := parsed.Scheme + "://" + parsed.Host
	if _, ok := h.allowedOrigins[normalized]; ok {
		return true
	}
	if _, ok := h.allowedOrigins["*"]; ok {
		return true
	}

	return false
}

// HandleConnection обрабатывает новое WebSocket соединение.
// Блокируется до закрытия соединения или остановки hub
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			"remote_addr", r.RemoteAddr,
			"origin", r.Header.Get("Origin"),
			"error", err.Error(),
		)
		return
	}

	client := wsInfra.NewClient(h.hub, conn, h.rules, h.initial, h.renderer, h.logger)
	h.logger.Info("WebSocket session opened", "session_id", client.ID(), "remote_addr", r.RemoteAddr)

	client.Serve(r.Context())

	h.logger.Info("WebSocket session closed", "session_id", client.ID())
}
