package s3

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/csvfile"
)

type Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LaunchRepository читает CSV набора данных из объекта S3-совместимого хранилища
type LaunchRepository struct {
	client getObjectAPI
	bucket string
	key    string
}

var _ repository.LaunchRepository = (*LaunchRepository)(nil)

// NewLaunchRepository создает S3 клиент по Config
func NewLaunchRepository(ctx context.Context, cfg Config) (*LaunchRepository, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, fmt.Errorf("s3 object key is required")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if strings.TrimSpace(cfg.AccessKeyID) != "" && strings.TrimSpace(cfg.SecretAccessKey) != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			options.BaseEndpoint = &endpoint
		}
		options.UsePathStyle = cfg.UsePathStyle
	})

	return newLaunchRepository(client, cfg.Bucket, cfg.Key), nil
}

func newLaunchRepository(client getObjectAPI, bucket, key string) *LaunchRepository {
	return &LaunchRepository{
		client: client,
		bucket: strings.TrimSpace(bucket),
		key:    strings.TrimLeft(strings.TrimSpace(key), "/"),
	}
}

// Source возвращает "s3://<bucket>/<key>"
func (r *LaunchRepository) Source() string {
	return "s3://" + r.bucket + "/" + r.key
}

// LoadTable скачивает объект и разбирает его как CSV
func (r *LaunchRepository) LoadTable(ctx context.Context) (*entity.LaunchTable, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &r.key,
	})
	if err != nil {
		return nil, entity.NewLoadError(r.Source(), fmt.Errorf("failed to get dataset object: %w", err))
	}
	defer out.Body.Close()

	return csvfile.ParseLaunchTable(out.Body, r.Source())
}
