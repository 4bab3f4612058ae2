package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/csvfile"
)

const (
	attrFlightNumber    = "flight_number"
	attrLaunchSite      = "launch_site"
	attrPayloadMass     = "payload_mass_kg"
	attrBoosterCategory = "booster_version_category"
	attrClass           = "class"

	scanPageSize int32 = 100
)

type Config struct {
	TableName       string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// LaunchRepository сканирует таблицу DynamoDB постранично
type LaunchRepository struct {
	client    dynamodb.ScanAPIClient
	tableName string
}

var _ repository.LaunchRepository = (*LaunchRepository)(nil)

func NewLaunchRepository(ctx context.Context, cfg Config) (*LaunchRepository, error) {
	if strings.TrimSpace(cfg.TableName) == "" {
		return nil, fmt.Errorf("dynamodb table name is required")
	}

	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	accessKeyID := strings.TrimSpace(cfg.AccessKeyID)
	secretAccessKey := strings.TrimSpace(cfg.SecretAccessKey)
	if accessKeyID != "" || secretAccessKey != "" {
		if accessKeyID == "" || secretAccessKey == "" {
			return nil, fmt.Errorf("both dynamodb access key id and secret access key are required for static credentials")
		}
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config for dynamodb: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(options *dynamodb.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			options.BaseEndpoint = &endpoint
		}
	})

	return newLaunchRepository(client, cfg.TableName), nil
}

func newLaunchRepository(client dynamodb.ScanAPIClient, tableName string) *LaunchRepository {
	return &LaunchRepository{
		client:    client,
		tableName: strings.TrimSpace(tableName),
	}
}

func (r *LaunchRepository) Source() string {
	return "dynamodb:" + r.tableName
}

// LoadTable читает все страницы Scan и упорядочивает записи по flight_number
func (r *LaunchRepository) LoadTable(ctx context.Context) (*entity.LaunchTable, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.tableName,
		Limit:     int32Pointer(scanPageSize),
	})

	items := make([]launchItem, 0, 64)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, entity.NewLoadError(r.Source(), fmt.Errorf("failed to scan table: %w", err))
		}

		for _, raw := range page.Items {
			item, err := fromItem(raw)
			if err != nil {
				return nil, entity.NewLoadError(r.Source(), err)
			}
			items = append(items, item)
		}
	}

	// Scan не гарантирует порядок
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].flightNumber < items[j].flightNumber
	})

	records := make([]*entity.LaunchRecord, 0, len(items))
	for _, item := range items {
		record, err := entity.NewLaunchRecord(item.launchSite, item.payloadMass, item.boosterCategory, item.class)
		if err != nil {
			return nil, entity.NewLoadError(r.Source(), fmt.Errorf("flight %d: %w", item.flightNumber, err))
		}
		records = append(records, record)
	}

	table, err := entity.NewLaunchTable(records)
	if err != nil {
		return nil, entity.NewLoadError(r.Source(), err)
	}

	return table, nil
}

type launchItem struct {
	flightNumber    int64
	launchSite      string
	payloadMass     float64
	boosterCategory string
	class           int
}

func fromItem(item map[string]types.AttributeValue) (launchItem, error) {
	flightNumber, err := attrInt64(item, attrFlightNumber)
	if err != nil {
		return launchItem{}, err
	}

	launchSite, err := attrString(item, attrLaunchSite)
	if err != nil {
		return launchItem{}, err
	}

	payloadMass, err := attrFloat64(item, attrPayloadMass)
	if err != nil {
		return launchItem{}, err
	}

	classRaw, ok := item[attrClass].(*types.AttributeValueMemberN)
	if !ok {
		return launchItem{}, fmt.Errorf("invalid attribute %s", attrClass)
	}
	class, err := csvfile.ParseClass(classRaw.Value)
	if err != nil {
		return launchItem{}, fmt.Errorf("flight %d: %w", flightNumber, err)
	}

	return launchItem{
		flightNumber:    flightNumber,
		launchSite:      launchSite,
		payloadMass:     payloadMass,
		boosterCategory: optionalString(item, attrBoosterCategory),
		class:           class,
	}, nil
}

func attrString(item map[string]types.AttributeValue, name string) (string, error) {
	raw, ok := item[name]
	if !ok {
		return "", fmt.Errorf("missing attribute %s", name)
	}
	value, ok := raw.(*types.AttributeValueMemberS)
	if !ok || strings.TrimSpace(value.Value) == "" {
		return "", fmt.Errorf("invalid attribute %s", name)
	}
	return value.Value, nil
}

func optionalString(item map[string]types.AttributeValue, name string) string {
	raw, ok := item[name]
	if !ok {
		return ""
	}
	value, ok := raw.(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return value.Value
}

func attrInt64(item map[string]types.AttributeValue, name string) (int64, error) {
	raw, ok := item[name]
	if !ok {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	value, ok := raw.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("invalid attribute %s", name)
	}
	parsed, err := strconv.ParseInt(value.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid attribute %s: %w", name, err)
	}
	return parsed, nil
}

func attrFloat64(item map[string]types.AttributeValue, name string) (float64, error) {
	raw, ok := item[name]
	if !ok {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	value, ok := raw.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("invalid attribute %s", name)
	}
	parsed, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid attribute %s: %w", name, err)
	}
	return parsed, nil
}

func int32Pointer(v int32) *int32 {
	return &v
}
