package entity

import (
	"errors"
	"math"
	"strings"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// Названия колонок исходного набора данных
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnClass           = "class"
)

// RequiredColumns возвращает обязательные колонки в каноническом порядке
func RequiredColumns() []string {
	return []string{ColumnLaunchSite, ColumnPayloadMass, ColumnBoosterCategory, ColumnClass}
}

// LaunchRecord представляет одну строку набора данных о запусках
// Иммутабельна после создания
type LaunchRecord struct {
	launchSite      string
	payloadMass     float64
	boosterCategory string
	class           valueobject.OutcomeClass
}

// NewLaunchRecord создает запись с валидацией инвариантов
func NewLaunchRecord(
	launchSite string,
	payloadMass float64,
	boosterCategory string,
	class int,
) (*LaunchRecord, error) {
	site := strings.TrimSpace(launchSite)
	if site == "" {
		return nil, errors.New("launch site cannot be empty")
	}

	if math.IsNaN(payloadMass) || math.IsInf(payloadMass, 0) {
		return nil, errors.New("payload mass must be a finite number")
	}

	outcome, err := valueobject.NewOutcomeClass(class)
	if err != nil {
		return nil, err
	}

	return &LaunchRecord{
		launchSite:      site,
		payloadMass:     payloadMass,
		boosterCategory: strings.TrimSpace(boosterCategory),
		class:           outcome,
	}, nil
}

// LaunchSite возвращает площадку запуска
func (r *LaunchRecord) LaunchSite() string {
	return r.launchSite
}

// PayloadMass возвращает массу полезной нагрузки в кг
func (r *LaunchRecord) PayloadMass() float64 {
	return r.payloadMass
}

// BoosterCategory возвращает категорию версии ускорителя
func (r *LaunchRecord) BoosterCategory() string {
	return r.boosterCategory
}

// Class возвращает исход запуска
func (r *LaunchRecord) Class() valueobject.OutcomeClass {
	return r.class
}

// IsSuccess проверяет, был ли запуск успешным
func (r *LaunchRecord) IsSuccess() bool {
	return r.class == valueobject.Success
}
