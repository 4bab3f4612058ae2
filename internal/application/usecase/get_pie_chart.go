package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// GetPieChartUseCase строит pie график успешных запусков для выбранной площадки
type GetPieChartUseCase struct {
	table      *entity.LaunchTable
	aggregator *service.LaunchAggregator
	logger     *logger.Logger
}

// NewGetPieChartUseCase создает новый use case
func NewGetPieChartUseCase(
	table *entity.LaunchTable,
	aggregator *service.LaunchAggregator,
	logger *logger.Logger,
) *GetPieChartUseCase {
	return &GetPieChartUseCase{
		table:      table,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute агрегирует таблицу и строит Spec.
// Неизвестная площадка не является ошибкой: возвращается пустой график
func (uc *GetPieChartUseCase) Execute(ctx context.Context, site valueobject.SiteSelection) (chart.Spec, error) {
	data, err := uc.aggregator.AggregatePie(uc.table, site)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSelection) {
			uc.logger.Warn("Invalid pie selection, rendering empty chart", "site", site.String(), "error", err.Error())
			return chart.EmptySpec(chart.KindPie, service.PieTitle(site), chart.Encoding{
				Values: service.ColumnClassCount,
				Names:  entity.ColumnClass,
			}), nil
		}
		return chart.Spec{}, fmt.Errorf("failed to aggregate pie data: %w", err)
	}

	spec, err := chart.BuildPie(data.Frame, data.ValuesField, data.NamesField, data.Title)
	if err != nil {
		uc.logger.Error("Failed to build pie chart", err, "site", site.String())
		return chart.Spec{}, fmt.Errorf("failed to build pie chart: %w", err)
	}

	uc.logger.Debug("Pie chart built", "site", site.String(), "slices", len(spec.Slices))

	return spec, nil
}
