package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// LoadLaunchTableUseCase выполняет однократную загрузку таблицы при старте
type LoadLaunchTableUseCase struct {
	repository repository.LaunchRepository
	logger     *logger.Logger
}

// NewLoadLaunchTableUseCase создает новый use case
func NewLoadLaunchTableUseCase(repository repository.LaunchRepository, logger *logger.Logger) *LoadLaunchTableUseCase {
	return &LoadLaunchTableUseCase{
		repository: repository,
		logger:     logger,
	}
}

// Execute загружает таблицу. Ошибка всегда *entity.LoadError, повторов нет
func (uc *LoadLaunchTableUseCase) Execute(ctx context.Context) (*entity.LaunchTable, error) {
	source := uc.repository.Source()
	uc.logger.Info("Loading launch dataset", "source", source)

	started := time.Now()
	table, err := uc.repository.LoadTable(ctx)
	if err != nil {
		var loadErr *entity.LoadError
		if !errors.As(err, &loadErr) {
			err = entity.NewLoadError(source, err)
		}
		uc.logger.Error("Failed to load launch dataset", err, "source", source)
		return nil, err
	}

	uc.logger.Info("Launch dataset loaded",
		"source", source,
		"rows", table.Len(),
		"sites", len(table.Sites()),
		"min_payload", table.MinPayload(),
		"max_payload", table.MaxPayload(),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return table, nil
}
