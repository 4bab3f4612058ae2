package postgres

import (
	"database/sql"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

// LaunchDBModel представляет строку таблицы запусков в БД
type LaunchDBModel struct {
	FlightNumber    int64
	LaunchSite      string
	PayloadMassKg   float64
	BoosterCategory sql.NullString
	Class           int
}

// ToEntity конвертирует DB Model в Domain Entity
func ToEntity(model *LaunchDBModel) (*entity.LaunchRecord, error) {
	record, err := entity.NewLaunchRecord(
		model.LaunchSite,
		model.PayloadMassKg,
		model.BoosterCategory.String,
		model.Class,
	)
	if err != nil {
		return nil, fmt.Errorf("flight %d: %w", model.FlightNumber, err)
	}
	return record, nil
}
