// Package dataset выбирает реализацию repository.LaunchRepository по конфигурации
package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/csvfile"
	dynamodbRepo "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/dynamodb"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/postgres"
	s3Repo "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/s3"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/config"

	_ "github.com/lib/pq"
)

// Open создает репозиторий для cfg.Source.
// closeFn освобождает ресурсы источника (пул соединений PostgreSQL) и никогда не nil
func Open(ctx context.Context, cfg config.DatasetConfig) (repo repository.LaunchRepository, closeFn func() error, err error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.DatasetSourceCSV:
		return csvfile.NewLaunchRepository(cfg.Path), noop, nil

	case config.DatasetSourceS3:
		r, err := s3Repo.NewLaunchRepository(ctx, s3Repo.Config{
			Bucket:          cfg.S3.Bucket,
			Key:             cfg.S3.Key,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("init s3 dataset: %w", err)
		}
		return r, noop, nil

	case config.DatasetSourcePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		// таблица читается один раз при старте
		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("ping postgres: %w", err)
		}
		return postgres.NewLaunchRepository(db, cfg.Database.Table), db.Close, nil

	case config.DatasetSourceDynamoDB:
		r, err := dynamodbRepo.NewLaunchRepository(ctx, dynamodbRepo.Config{
			TableName:       cfg.DynamoDB.TableName,
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("init dynamodb dataset: %w", err)
		}
		return r, noop, nil
	}

	return nil, noop, fmt.Errorf("unsupported dataset source: %s", cfg.Source)
}
