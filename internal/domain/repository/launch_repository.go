package repository

import (
	"context"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

// LaunchRepository загружает таблицу запусков из источника (Port)
// Реализации в Infrastructure слое: csv файл, S3, PostgreSQL, DynamoDB
type LaunchRepository interface {
	// LoadTable читает таблицу целиком. Ошибки чтения и разбора
	// возвращаются как *entity.LoadError
	LoadTable(ctx context.Context) (*entity.LaunchTable, error)

	// Source возвращает человекочитаемое описание источника для логов
	Source() string
}
