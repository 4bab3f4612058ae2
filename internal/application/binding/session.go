package binding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// ErrSessionClosed возвращается при отправке события в закрытую сессию
var ErrSessionClosed = errors.New("session closed")

// Event - изменение значения элемента управления
type Event struct {
	ID     string
	Source ComponentID
	Site   string
	Low    float64
	High   float64
}

// apply возвращает новое состояние после события
func (e Event) apply(state State) (State, error) {
	switch e.Source {
	case SiteDropdown:
		state.Site = valueobject.NewSiteSelection(e.Site)
	case PayloadSlider:
		state.Low, state.High = e.Low, e.High
	default:
		return state, fmt.Errorf("%w: %s", ErrUnknownTrigger, e.Source)
	}
	return state, nil
}

// Emitter доставляет обновления клиенту. Вызывается из goroutine сессии
type Emitter func(ctx context.Context, eventID string, updates []Update) error

// Session - event loop одного интерактивного клиента.
// События обрабатываются строго по одному в порядке поступления
type Session struct {
	id     string
	table  *Table
	state  State
	emit   Emitter
	logger *logger.Logger

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession создает сессию с начальным состоянием
func NewSession(id string, table *Table, initial State, emit Emitter, logger *logger.Logger) *Session {
	return &Session{
		id:     id,
		table:  table,
		state:  initial,
		emit:   emit,
		logger: logger,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Submit ставит событие в очередь. Блокируется, пока очередь заполнена
func (s *Session) Submit(ctx context.Context, event Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.events <- event:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close останавливает цикл обработки
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Run отправляет начальные графики и обрабатывает события до Close или отмены ctx
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()

	if err := s.emit(ctx, "", s.table.Initial(ctx, s.state)); err != nil {
		return fmt.Errorf("failed to emit initial charts: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case event := <-s.events:
			if err := s.handle(ctx, event); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handle(ctx context.Context, event Event) error {
	next, err := event.apply(s.state)
	if err != nil {
		s.logger.Warn("Rejected session event", "session_id", s.id, "source", event.Source, "error", err.Error())
		return s.emit(ctx, event.ID, []Update{{Target: event.Source, Err: err}})
	}
	s.state = next

	updates, err := s.table.Dispatch(ctx, s.state, event.Source)
	if err != nil {
		s.logger.Warn("Dispatch failed", "session_id", s.id, "source", event.Source, "error", err.Error())
		return s.emit(ctx, event.ID, []Update{{Target: event.Source, Err: err}})
	}

	s.logger.Debug("Session event handled", "session_id", s.id, "source", event.Source, "updates", len(updates))

	if err := s.emit(ctx, event.ID, updates); err != nil {
		return fmt.Errorf("failed to emit updates: %w", err)
	}
	return nil
}
