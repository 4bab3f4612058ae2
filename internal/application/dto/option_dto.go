package dto

import "github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"

// SiteOptionDTO - пункт dropdown
type SiteOptionDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ToSiteOptionDTOs конвертирует пункты dropdown в DTO
func ToSiteOptionDTOs(options []service.SiteOption) []SiteOptionDTO {
	dtos := make([]SiteOptionDTO, len(options))
	for i, o := range options {
		dtos[i] = SiteOptionDTO{Label: o.Label, Value: o.Value}
	}
	return dtos
}
