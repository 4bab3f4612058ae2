package usecase

import (
	"context"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// DashboardDTO - все, что нужно для первой отрисовки страницы
type DashboardDTO struct {
	State   dto.StateDTO
	Options []dto.SiteOptionDTO
	Charts  map[string]*dto.UpdateDTO
	MinMass float64
	MaxMass float64
}

// GetDashboardUseCase собирает начальное состояние страницы
type GetDashboardUseCase struct {
	table    *entity.LaunchTable
	rules    *binding.Table
	options  *GetSiteOptionsUseCase
	renderer port.ChartRenderer
	logger   *logger.Logger
}

// NewGetDashboardUseCase создает новый use case
func NewGetDashboardUseCase(
	table *entity.LaunchTable,
	rules *binding.Table,
	options *GetSiteOptionsUseCase,
	renderer port.ChartRenderer,
	logger *logger.Logger,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		table:    table,
		rules:    rules,
		options:  options,
		renderer: renderer,
		logger:   logger,
	}
}

// InitialState возвращает состояние при загрузке страницы
func (uc *GetDashboardUseCase) InitialState() binding.State {
	return binding.InitialState(uc.table)
}

// Execute выполняет все правила для начального состояния
func (uc *GetDashboardUseCase) Execute(ctx context.Context) *DashboardDTO {
	state := uc.InitialState()
	updates := RenderUpdates(ctx, uc.renderer, uc.rules.Initial(ctx, state), uc.logger)

	charts := make(map[string]*dto.UpdateDTO, len(updates))
	for _, u := range updates {
		charts[u.Target] = u
	}

	return &DashboardDTO{
		State:   dto.FromState(state),
		Options: uc.options.Execute(),
		Charts:  charts,
		MinMass: uc.table.MinPayload(),
		MaxMass: uc.table.MaxPayload(),
	}
}
