package usecase

import (
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
)

// GetSiteOptionsUseCase возвращает пункты dropdown площадок
type GetSiteOptionsUseCase struct {
	options []dto.SiteOptionDTO
}

// NewGetSiteOptionsUseCase вычисляет пункты один раз: таблица неизменна
func NewGetSiteOptionsUseCase(table *entity.LaunchTable) *GetSiteOptionsUseCase {
	return &GetSiteOptionsUseCase{
		options: dto.ToSiteOptionDTOs(service.SiteOptions(table)),
	}
}

// Execute возвращает копию пунктов
func (uc *GetSiteOptionsUseCase) Execute() []dto.SiteOptionDTO {
	out := make([]dto.SiteOptionDTO, len(uc.options))
	copy(out, uc.options)
	return out
}
