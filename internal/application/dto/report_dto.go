package dto

import "github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"

// ReportRowDTO - строка отчета по группе запусков
type ReportRowDTO struct {
	Key       string  `json:"key"`
	Launches  int     `json:"launches"`
	Successes int     `json:"successes"`
	Rate      float64 `json:"success_rate"`
}

// ReportDTO - отчет о доле успешных запусков
type ReportDTO struct {
	Kind   string         `json:"kind"`
	Source string         `json:"source"`
	Total  int            `json:"total_launches"`
	Rows   []ReportRowDTO `json:"rows"`
	Best   *ReportRowDTO  `json:"best,omitempty"`
}

// NewReportRowDTO конвертирует service.SuccessRate в DTO
func NewReportRowDTO(rate service.SuccessRate) ReportRowDTO {
	return ReportRowDTO{
		Key:       rate.Key,
		Launches:  rate.Launches,
		Successes: rate.Successes,
		Rate:      rate.Rate(),
	}
}
