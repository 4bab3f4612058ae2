package port

import (
	"context"
	"time"
)

// CallbackMetric - измерение одного выполнения правила
type CallbackMetric struct {
	Rule      string
	Trigger   string
	Duration  time.Duration
	Points    int
	Empty     bool
	Failed    bool
	Timestamp time.Time
}

// CallbackMetricsPublisher отправляет метрики выполнения правил во внешнюю систему
// наблюдаемости (Prometheus, CloudWatch)
type CallbackMetricsPublisher interface {
	// RecordCallback принимает одно измерение. Реализации могут буферизовать
	RecordCallback(ctx context.Context, metric CallbackMetric) error

	// Flush отправляет накопленные измерения. Вызывается при graceful shutdown
	Flush(ctx context.Context) error
}
