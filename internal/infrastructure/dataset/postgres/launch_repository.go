package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	"github.com/lib/pq"
)

const defaultTable = "spacex_launches"

// LaunchRepository реализует repository.LaunchRepository для PostgreSQL
type LaunchRepository struct {
	db    *sql.DB
	table string
}

var _ repository.LaunchRepository = (*LaunchRepository)(nil)

// NewLaunchRepository создает новый PostgreSQL repository
func NewLaunchRepository(db *sql.DB, table string) *LaunchRepository {
	if strings.TrimSpace(table) == "" {
		table = defaultTable
	}
	return &LaunchRepository{
		db:    db,
		table: strings.TrimSpace(table),
	}
}

func (r *LaunchRepository) Source() string {
	return "postgres:" + r.table
}

// LoadTable читает все строки в порядке flight_number
func (r *LaunchRepository) LoadTable(ctx context.Context) (*entity.LaunchTable, error) {
	rows, err := r.db.QueryContext(ctx, selectQuery(r.table))
	if err != nil {
		return nil, entity.NewLoadError(r.Source(), fmt.Errorf("failed to query launches: %w", err))
	}
	defer rows.Close()

	records, err := r.scanLaunches(rows)
	if err != nil {
		return nil, entity.NewLoadError(r.Source(), err)
	}

	table, err := entity.NewLaunchTable(records)
	if err != nil {
		return nil, entity.NewLoadError(r.Source(), err)
	}

	return table, nil
}

// scanLaunches вспомогательная функция для сканирования rows
func (r *LaunchRepository) scanLaunches(rows *sql.Rows) ([]*entity.LaunchRecord, error) {
	records := make([]*entity.LaunchRecord, 0)

	for rows.Next() {
		var model LaunchDBModel
		err := rows.Scan(
			&model.FlightNumber,
			&model.LaunchSite,
			&model.PayloadMassKg,
			&model.BoosterCategory,
			&model.Class,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}

		record, err := ToEntity(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to entity: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

func selectQuery(table string) string {
	return `
		SELECT flight_number, launch_site, payload_mass_kg, booster_version_category, class
		FROM ` + pq.QuoteIdentifier(table) + `
		ORDER BY flight_number ASC
	`
}
