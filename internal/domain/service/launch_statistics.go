package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

// SuccessRate - сводка по группе запусков
type SuccessRate struct {
	Key       string
	Launches  int
	Successes int
}

// Rate возвращает долю успешных запусков в [0,1]
func (s SuccessRate) Rate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// LaunchStatistics считает доли успешных запусков для отчетов (Domain Service)
type LaunchStatistics struct{}

// NewLaunchStatistics создает новый LaunchStatistics
func NewLaunchStatistics() *LaunchStatistics {
	return &LaunchStatistics{}
}

// BySite группирует по площадке в порядке первого появления
func (s *LaunchStatistics) BySite(table *entity.LaunchTable) []SuccessRate {
	return groupRates(table.Records(), func(r *entity.LaunchRecord) string { return r.LaunchSite() })
}

// ByBooster группирует по категории ускорителя в порядке первого появления
func (s *LaunchStatistics) ByBooster(table *entity.LaunchTable) []SuccessRate {
	return groupRates(table.Records(), func(r *entity.LaunchRecord) string { return r.BoosterCategory() })
}

// MaxPayloadBands - предел числа интервалов в отчете по массе
const MaxPayloadBands = 1000

// ByPayloadBand группирует по интервалам массы [k*width, (k+1)*width).
// Ширина, дающая больше MaxPayloadBands интервалов, отклоняется
func (s *LaunchStatistics) ByPayloadBand(table *entity.LaunchTable, width float64) ([]SuccessRate, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, errors.New("band width must be positive")
	}

	lowest := math.Floor(table.MinPayload() / width)
	highest := math.Floor(table.MaxPayload() / width)
	count := highest - lowest + 1
	if math.IsInf(count, 0) || math.IsNaN(count) || count > MaxPayloadBands {
		return nil, fmt.Errorf("band width %g is too small: more than %d bands for payload range [%g, %g]",
			width, MaxPayloadBands, table.MinPayload(), table.MaxPayload())
	}

	n := int(count)
	bands := make([]SuccessRate, n)
	for i := range bands {
		k := lowest + float64(i)
		bands[i].Key = fmt.Sprintf("%.0f-%.0f", k*width, (k+1)*width)
	}

	for _, r := range table.Records() {
		i := int(math.Floor(r.PayloadMass()/width) - lowest)
		// граница max/width может округлиться на единицу при больших значениях
		i = max(0, min(i, n-1))
		bands[i].Launches++
		if r.IsSuccess() {
			bands[i].Successes++
		}
	}

	return bands, nil
}

// Best возвращает группу с наибольшей долей успеха (при равенстве - первую)
func (s *LaunchStatistics) Best(rates []SuccessRate) (SuccessRate, bool) {
	var best SuccessRate
	found := false
	for _, r := range rates {
		if r.Launches == 0 {
			continue
		}
		if !found || r.Rate() > best.Rate() {
			best = r
			found = true
		}
	}
	return best, found
}

func groupRates(records []*entity.LaunchRecord, key func(*entity.LaunchRecord) string) []SuccessRate {
	index := make(map[string]int)
	rates := make([]SuccessRate, 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(rates)
			index[k] = i
			rates = append(rates, SuccessRate{Key: k})
		}
		rates[i].Launches++
		if r.IsSuccess() {
			rates[i].Successes++
		}
	}
	return rates
}
