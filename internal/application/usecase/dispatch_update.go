package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// DispatchUpdateUseCase выполняет правила для одного изменения без серверной сессии
type DispatchUpdateUseCase struct {
	rules    *binding.Table
	renderer port.ChartRenderer
	logger   *logger.Logger
}

// NewDispatchUpdateUseCase создает новый use case. renderer может быть nil, тогда SVG не добавляется
func NewDispatchUpdateUseCase(
	rules *binding.Table,
	renderer port.ChartRenderer,
	logger *logger.Logger,
) *DispatchUpdateUseCase {
	return &DispatchUpdateUseCase{
		rules:    rules,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute выполняет правила, подписанные на request.Trigger
func (uc *DispatchUpdateUseCase) Execute(ctx context.Context, request dto.UpdateRequestDTO) (*dto.UpdateResponseDTO, error) {
	updates, err := uc.rules.Dispatch(ctx, request.State.ToState(), binding.ComponentID(request.Trigger))
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch %s: %w", request.Trigger, err)
	}

	return &dto.UpdateResponseDTO{Updates: RenderUpdates(ctx, uc.renderer, updates, uc.logger)}, nil
}

// RenderUpdates конвертирует обновления в DTO и добавляет SVG
func RenderUpdates(
	ctx context.Context,
	renderer port.ChartRenderer,
	updates []binding.Update,
	log *logger.Logger,
) []*dto.UpdateDTO {
	out := make([]*dto.UpdateDTO, 0, len(updates))
	for _, update := range updates {
		item := dto.FromUpdate(update)
		if update.Err != nil {
			log.Error("Callback failed", update.Err, "rule", update.Rule, "target", string(update.Target))
		} else if renderer != nil {
			svg, err := renderer.RenderSVG(ctx, update.Spec)
			if err != nil {
				log.Error("Failed to render chart", err, "target", string(update.Target))
				item.Error = fmt.Sprintf("failed to render chart: %v", err)
			} else {
				item.SVG = string(svg)
			}
		}
		out = append(out, item)
	}
	return out
}
