package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

const (
	// Время ожидания для write операций
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал ping сообщений (должен быть меньше pongWait)
	pingPeriod = 54 * time.Second

	// Максимальный размер сообщения
	maxMessageSize = 1024
)

// Client - WebSocket соединение с собственной сессией (event loop)
type Client struct {
	conn     *websocket.Conn
	hub      *Hub
	session  *binding.Session
	renderer port.ChartRenderer

	// Канал для отправки сообщений
	send chan Message
	// Закрывается WritePump при выходе
	stopped chan struct{}

	logger *logger.Logger
}

// NewClient создает клиента и его сессию с начальным состоянием
func NewClient(
	hub *Hub,
	conn *websocket.Conn,
	rules *binding.Table,
	initial binding.State,
	renderer port.ChartRenderer,
	logger *logger.Logger,
) *Client {
	c := &Client{
		conn:     conn,
		hub:      hub,
		renderer: renderer,
		send:     make(chan Message, 64),
		stopped:  make(chan struct{}),
		logger:   logger,
	}
	c.session = binding.NewSession(uuid.NewString(), rules, initial, c.emit, logger)
	return c
}

// ID возвращает идентификатор сессии
func (c *Client) ID() string {
	return c.session.ID()
}

// Serve регистрирует клиента и обслуживает соединение до его закрытия
func (c *Client) Serve(ctx context.Context) {
	c.hub.Register(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.WritePump()
	go func() {
		if err := c.session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("Session stopped", err, "session_id", c.ID())
		}
		close(c.send)
	}()

	c.ReadPump(ctx)
}

// emit вызывается из goroutine сессии, порядок обновлений сохраняется
func (c *Client) emit(ctx context.Context, eventID string, updates []binding.Update) error {
	for _, item := range usecase.RenderUpdates(ctx, c.renderer, updates, c.logger) {
		msg := Message{Type: "update", EventID: eventID, Data: item}
		if item.Figure == nil && item.Error != "" {
			msg.Type = "error"
		}

		select {
		case c.send <- msg:
		case <-c.stopped:
			return errors.New("websocket writer stopped")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// ReadPump читает события от клиента и передает их в сессию
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("WebSocket close error", "error", err.Error())
		}
	}()

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("WebSocket set read deadline error", err)
		return
	}
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket read error", err)
			}
			return
		}

		event, err := ParseEvent(data)
		if err != nil {
			c.logger.Warn("Invalid client message", "session_id", c.ID(), "error", err.Error())
			continue
		}

		if err := c.session.Submit(ctx, event); err != nil {
			c.logger.Debug("Session no longer accepts events", "session_id", c.ID(), "error", err.Error())
			return
		}
	}
}

// WritePump отправляет сообщения клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.stopped)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("WebSocket close error", "error", err.Error())
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("WebSocket set write deadline error", err)
				return
			}
			if !ok {
				// Сессия завершилась
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("WebSocket close message error", "error", err.Error())
				}
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("WebSocket write error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("WebSocket set write deadline error", err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ParseEvent разбирает сообщение клиента в событие сессии
func ParseEvent(data []byte) (binding.Event, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return binding.Event{}, fmt.Errorf("failed to decode message: %w", err)
	}
	if msg.Type != "event" {
		return binding.Event{}, fmt.Errorf("unsupported message type: %q", msg.Type)
	}

	event := binding.Event{
		ID:     msg.ID,
		Source: binding.ComponentID(msg.Source),
		Site:   msg.Site,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if event.Source == binding.PayloadSlider {
		if msg.Range == nil {
			return binding.Event{}, errors.New("payload-slider event requires range")
		}
		event.Low, event.High = msg.Range[0], msg.Range[1]
	}

	return event, nil
}
