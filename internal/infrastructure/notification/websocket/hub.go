package websocket

import (
	"context"
	"sync"

	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// Hub учитывает подключенные интерактивные сессии и закрывает их при остановке сервера
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для удаления клиентов
	unregister chan *Client

	// Закрывается при остановке Run
	done chan struct{}

	// Mutex для защиты clients map
	mu sync.RWMutex

	logger *logger.Logger
}

// NewHub создает новый WebSocket hub
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run запускает hub (должен быть запущен в отдельной goroutine) до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("WebSocket hub started")
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client registered", "session_id", client.ID(), "total_clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.session.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client unregistered", "session_id", client.ID(), "total_clients", total)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.session.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket hub stopped")
			return
		}
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.session.Close()
	}
}

// Unregister удаляет клиента
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message - сообщение сервера клиенту
type Message struct {
	Type    string      `json:"type"` // "update" или "error"
	EventID string      `json:"event_id,omitempty"`
	Data    interface{} `json:"data"`
}

// ClientMessage - сообщение клиента серверу
type ClientMessage struct {
	Type   string      `json:"type"` // "event"
	ID     string      `json:"id,omitempty"`
	Source string      `json:"source"`
	Site   string      `json:"site,omitempty"`
	Range  *[2]float64 `json:"range,omitempty"`
}
