package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// TrackInteractionUseCase наблюдает за выполнением правил:
// пишет метрики и публикует события взаимодействия
type TrackInteractionUseCase struct {
	metrics   []port.CallbackMetricsPublisher
	publisher port.InteractionPublisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewTrackInteractionUseCase создает новый use case. publisher может быть nil
func NewTrackInteractionUseCase(
	publisher port.InteractionPublisher,
	logger *logger.Logger,
	metrics ...port.CallbackMetricsPublisher,
) *TrackInteractionUseCase {
	return &TrackInteractionUseCase{
		metrics:   metrics,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CallbackCompleted реализует binding.Observer.
// Ошибки sink'ов логируются и не влияют на ответ пользователю
func (uc *TrackInteractionUseCase) CallbackCompleted(ctx context.Context, cb binding.Callback) {
	now := uc.now().UTC()

	metric := port.CallbackMetric{
		Rule:      cb.Rule,
		Trigger:   string(cb.Trigger),
		Duration:  cb.Duration,
		Points:    pointCount(cb),
		Empty:     cb.Spec.Empty,
		Failed:    cb.Err != nil,
		Timestamp: now,
	}

	for _, m := range uc.metrics {
		if err := m.RecordCallback(ctx, metric); err != nil {
			uc.logger.Warn("Failed to record callback metric", "rule", cb.Rule, "error", err.Error())
		}
	}

	uc.logger.Debug("Callback completed",
		"rule", cb.Rule,
		"trigger", string(cb.Trigger),
		"duration_ms", float64(cb.Duration.Microseconds())/1000,
		"empty", cb.Spec.Empty,
	)

	if uc.publisher == nil {
		return
	}

	event := &dto.InteractionEventDTO{
		ID:         uuid.NewString(),
		Rule:       cb.Rule,
		Trigger:    string(cb.Trigger),
		Target:     string(cb.Target),
		Site:       cb.State.Site.String(),
		Range:      [2]float64{cb.State.Low, cb.State.High},
		Points:     metric.Points,
		Empty:      cb.Spec.Empty,
		DurationMs: float64(cb.Duration.Microseconds()) / 1000,
		OccurredAt: now,
	}
	if cb.Err != nil {
		event.Error = cb.Err.Error()
	}

	if err := uc.publisher.PublishInteraction(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish interaction event", "rule", cb.Rule, "error", err.Error())
	}
}

// Flush сбрасывает буферы метрик, вызывается при остановке
func (uc *TrackInteractionUseCase) Flush(ctx context.Context) {
	for _, m := range uc.metrics {
		if err := m.Flush(ctx); err != nil {
			uc.logger.Error("Failed to flush callback metrics", err)
		}
	}
}

// pointCount - число точек scatter или число строк, попавших в pie
func pointCount(cb binding.Callback) int {
	if n := cb.Spec.PointCount(); n > 0 {
		return n
	}
	n := 0
	for _, s := range cb.Spec.Slices {
		n += s.Rows
	}
	return n
}
