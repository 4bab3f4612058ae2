package csvfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
)

// LaunchRepository читает таблицу запусков из локального CSV файла
type LaunchRepository struct {
	path string
}

var _ repository.LaunchRepository = (*LaunchRepository)(nil)

// NewLaunchRepository создает repository для CSV файла по пути path
func NewLaunchRepository(path string) *LaunchRepository {
	return &LaunchRepository{path: path}
}

// Source возвращает "csv:<path>" для логов и ошибок загрузки
func (r *LaunchRepository) Source() string {
	return "csv:" + r.path
}

// LoadTable читает и разбирает файл целиком. Ошибки оборачиваются в *entity.LoadError
func (r *LaunchRepository) LoadTable(ctx context.Context) (*entity.LaunchTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.NewLoadError(r.Source(), err)
	}

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entity.NewLoadError(r.Source(), fmt.Errorf("dataset file not found: %w", err))
		}
		return nil, entity.NewLoadError(r.Source(), fmt.Errorf("failed to open dataset: %w", err))
	}
	defer file.Close()

	return ParseLaunchTable(file, r.Source())
}
