package port

import (
	"context"
	"time"
)

// LogEntry - структурированная запись лога для внешней системы
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
	Fields    map[string]interface{}
}

// LogPublisher пересылает записи лога во внешнюю систему (CloudWatch Logs)
type LogPublisher interface {
	// Publish добавляет запись в буфер
	Publish(ctx context.Context, entry LogEntry) error

	// Flush отправляет буфер
	Flush(ctx context.Context) error
}
