package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// GetScatterChartUseCase строит scatter график payload vs class
type GetScatterChartUseCase struct {
	table      *entity.LaunchTable
	aggregator *service.LaunchAggregator
	logger     *logger.Logger
}

// NewGetScatterChartUseCase создает новый use case
func NewGetScatterChartUseCase(
	table *entity.LaunchTable,
	aggregator *service.LaunchAggregator,
	logger *logger.Logger,
) *GetScatterChartUseCase {
	return &GetScatterChartUseCase{
		table:      table,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute фильтрует таблицу по площадке и диапазону и строит Spec.
// Неизвестная площадка или low > high дают пустой график
func (uc *GetScatterChartUseCase) Execute(
	ctx context.Context,
	site valueobject.SiteSelection,
	low, high float64,
) (chart.Spec, error) {
	title := service.ScatterTitle(site)
	empty := chart.EmptySpec(chart.KindScatter, title, chart.Encoding{
		X:     chart.DefaultScatterX,
		Y:     chart.DefaultScatterY,
		Color: chart.DefaultScatterColor,
	})

	payload, err := valueobject.NewPayloadRange(low, high)
	if err != nil {
		err = &service.InvalidInputError{
			Field: "payload",
			Value: strconv.FormatFloat(low, 'f', -1, 64) + "," + strconv.FormatFloat(high, 'f', -1, 64),
			Err:   err,
		}
		uc.logger.Warn("Invalid payload range, rendering empty chart", "error", err.Error())
		return empty, nil
	}

	frame, err := uc.aggregator.FilterScatter(uc.table, site, payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSelection) {
			uc.logger.Warn("Invalid scatter selection, rendering empty chart", "site", site.String(), "error", err.Error())
			return empty, nil
		}
		return chart.Spec{}, fmt.Errorf("failed to filter scatter data: %w", err)
	}

	spec, err := chart.BuildScatter(frame, chart.DefaultScatterX, chart.DefaultScatterY, chart.DefaultScatterColor, title)
	if err != nil {
		uc.logger.Error("Failed to build scatter chart", err, "site", site.String())
		return chart.Spec{}, fmt.Errorf("failed to build scatter chart: %w", err)
	}

	uc.logger.Debug("Scatter chart built",
		"site", site.String(),
		"range", payload.String(),
		"mode", string(uc.aggregator.ScatterMode()),
		"points", spec.PointCount(),
	)

	return spec, nil
}
