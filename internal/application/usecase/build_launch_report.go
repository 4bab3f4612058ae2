package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
)

// ReportKind - группировка отчета
type ReportKind string

const (
	ReportBySite    ReportKind = "sites"
	ReportByPayload ReportKind = "payload"
	ReportByBooster ReportKind = "boosters"
)

// BuildLaunchReportCommand - параметры отчета
type BuildLaunchReportCommand struct {
	Kind      ReportKind
	BandWidth float64
}

// BuildLaunchReportUseCase считает доли успешных запусков по группам
type BuildLaunchReportUseCase struct {
	table  *entity.LaunchTable
	source string
	stats  *service.LaunchStatistics
}

// NewBuildLaunchReportUseCase создает новый use case
func NewBuildLaunchReportUseCase(table *entity.LaunchTable, source string, stats *service.LaunchStatistics) *BuildLaunchReportUseCase {
	return &BuildLaunchReportUseCase{
		table:  table,
		source: source,
		stats:  stats,
	}
}

// Execute строит отчет
func (uc *BuildLaunchReportUseCase) Execute(ctx context.Context, cmd BuildLaunchReportCommand) (*dto.ReportDTO, error) {
	var rates []service.SuccessRate

	switch cmd.Kind {
	case ReportBySite:
		rates = uc.stats.BySite(uc.table)
	case ReportByBooster:
		rates = uc.stats.ByBooster(uc.table)
	case ReportByPayload:
		var err error
		rates, err = uc.stats.ByPayloadBand(uc.table, cmd.BandWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to group by payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown report kind: %s", cmd.Kind)
	}

	report := &dto.ReportDTO{
		Kind:   string(cmd.Kind),
		Source: uc.source,
		Total:  uc.table.Len(),
		Rows:   make([]dto.ReportRowDTO, 0, len(rates)),
	}
	for _, r := range rates {
		report.Rows = append(report.Rows, dto.NewReportRowDTO(r))
	}

	if best, ok := uc.stats.Best(rates); ok {
		row := dto.NewReportRowDTO(best)
		report.Best = &row
	}

	return report, nil
}
