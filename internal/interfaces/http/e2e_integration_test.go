//go:build integration
// +build integration

package http

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/repository"
	dynamodbRepo "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/dynamodb"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/postgres"
	s3Repo "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/s3"
	_ "github.com/lib/pq"
)

type integrationEnv struct {
	postgresDSN     string
	postgresTable   string
	s3Endpoint      string
	s3Region        string
	s3AccessKey     string
	s3SecretKey     string
	s3Bucket        string
	s3Key           string
	s3UsePathStyle  bool
	dynamoEndpoint  string
	dynamoRegion    string
	dynamoAccessKey string
	dynamoSecretKey string
	dynamoTable     string
}

func loadIntegrationEnv() integrationEnv {
	return integrationEnv{
		postgresDSN:     getenv("INTEGRATION_POSTGRES_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=spacex sslmode=disable"),
		postgresTable:   getenv("INTEGRATION_POSTGRES_TABLE", "spacex_launches_e2e"),
		s3Endpoint:      getenv("INTEGRATION_S3_ENDPOINT", "http://localhost:9000"),
		s3Region:        getenv("INTEGRATION_S3_REGION", "us-east-1"),
		s3AccessKey:     getenv("INTEGRATION_S3_ACCESS_KEY", "minioadmin"),
		s3SecretKey:     getenv("INTEGRATION_S3_SECRET_KEY", "minioadmin"),
		s3Bucket:        getenv("INTEGRATION_S3_BUCKET", "spacex-datasets-e2e"),
		s3Key:           "spacex_launch_dash.csv",
		s3UsePathStyle:  true,
		dynamoEndpoint:  getenv("INTEGRATION_DYNAMO_ENDPOINT", "http://localhost:8000"),
		dynamoRegion:    getenv("INTEGRATION_DYNAMO_REGION", "us-east-1"),
		dynamoAccessKey: getenv("INTEGRATION_DYNAMO_ACCESS_KEY", "dynamo"),
		dynamoSecretKey: getenv("INTEGRATION_DYNAMO_SECRET_KEY", "dynamo"),
		dynamoTable:     getenv("INTEGRATION_DYNAMO_TABLE", "spacex_launches_e2e"),
	}
}

// launchRow - строка launchesCSV
type launchRow struct {
	flight  string
	site    string
	class   string
	payload string
	booster string
}

func launchRows(t *testing.T) []launchRow {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(launchesCSV)).ReadAll()
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	rows := make([]launchRow, 0, len(records)-1)
	for _, r := range records[1:] {
		rows = append(rows, launchRow{flight: r[0], site: r[1], class: r[2], payload: r[3], booster: r[4]})
	}
	return rows
}

func TestE2EIntegrationPostgresSource(t *testing.T) {
	env := loadIntegrationEnv()
	ctx := context.Background()

	db := connectPostgres(t, env.postgresDSN)
	t.Cleanup(func() { _ = db.Close() })
	seedPostgres(t, ctx, db, env.postgresTable, launchRows(t))

	assertSourceServesDashboard(t, postgres.NewLaunchRepository(db, env.postgresTable))
}

func TestE2EIntegrationS3Source(t *testing.T) {
	env := loadIntegrationEnv()
	ctx := context.Background()

	client := newS3Client(t, ctx, env)
	ensureS3Bucket(t, ctx, client, env.s3Bucket)
	if _, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &env.s3Bucket,
		Key:    &env.s3Key,
		Body:   strings.NewReader(launchesCSV),
	}); err != nil {
		t.Fatalf("put dataset object: %v", err)
	}

	repo, err := s3Repo.NewLaunchRepository(ctx, s3Repo.Config{
		Bucket:          env.s3Bucket,
		Key:             env.s3Key,
		Region:          env.s3Region,
		Endpoint:        env.s3Endpoint,
		AccessKeyID:     env.s3AccessKey,
		SecretAccessKey: env.s3SecretKey,
		UsePathStyle:    env.s3UsePathStyle,
	})
	if err != nil {
		t.Fatalf("build s3 repository: %v", err)
	}

	assertSourceServesDashboard(t, repo)
}

func TestE2EIntegrationDynamoDBSource(t *testing.T) {
	env := loadIntegrationEnv()
	ctx := context.Background()

	client := newDynamoClient(t, ctx, env)
	ensureDynamoTable(t, ctx, client, env.dynamoTable)
	for _, row := range launchRows(t) {
		_, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: &env.dynamoTable,
			Item: map[string]ddbtypes.AttributeValue{
				"flight_number":            &ddbtypes.AttributeValueMemberN{Value: row.flight},
				"launch_site":              &ddbtypes.AttributeValueMemberS{Value: row.site},
				"payload_mass_kg":          &ddbtypes.AttributeValueMemberN{Value: row.payload},
				"booster_version_category": &ddbtypes.AttributeValueMemberS{Value: row.booster},
				"class":                    &ddbtypes.AttributeValueMemberN{Value: row.class},
			},
		})
		if err != nil {
			t.Fatalf("put launch item: %v", err)
		}
	}

	repo, err := dynamodbRepo.NewLaunchRepository(ctx, dynamodbRepo.Config{
		TableName:       env.dynamoTable,
		Region:          env.dynamoRegion,
		Endpoint:        env.dynamoEndpoint,
		AccessKeyID:     env.dynamoAccessKey,
		SecretAccessKey: env.dynamoSecretKey,
	})
	if err != nil {
		t.Fatalf("build dynamodb repository: %v", err)
	}

	assertSourceServesDashboard(t, repo)
}

// assertSourceServesDashboard загружает таблицу из источника и проверяет ALL pie
func assertSourceServesDashboard(t *testing.T, repo repository.LaunchRepository) {
	t.Helper()

	table, err := repo.LoadTable(context.Background())
	if err != nil {
		t.Fatalf("load table from %s: %v", repo.Source(), err)
	}
	if table.Len() != 8 || table.MaxPayload() != 9600 {
		t.Fatalf("unexpected table from %s: rows=%d max=%v", repo.Source(), table.Len(), table.MaxPayload())
	}

	server, _ := newTestServerForTable(t, table)

	var pie dto.FigureDTO
	decodeJSON(t, doRequest(t, server.Client(), http.MethodGet, server.URL+"/api/v1/charts/pie", nil), &pie)
	if len(pie.Slices) != 4 || pie.Slices[0].Label != "CCAFS LC-40" {
		t.Fatalf("unexpected pie from %s: %+v", repo.Source(), pie.Slices)
	}
}

func connectPostgres(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping postgres: %v", err)
	}
	return db
}

func seedPostgres(t *testing.T, ctx context.Context, db *sql.DB, table string, rows []launchRow) {
	t.Helper()

	statements := []string{
		`DROP TABLE IF EXISTS ` + table,
		`CREATE TABLE ` + table + ` (
			flight_number            INTEGER PRIMARY KEY,
			launch_site              TEXT NOT NULL,
			payload_mass_kg          DOUBLE PRECISION NOT NULL,
			booster_version_category TEXT,
			class                    SMALLINT NOT NULL CHECK (class IN (0, 1))
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("prepare table: %v", err)
		}
	}

	// вставляем в обратном порядке, ORDER BY flight_number должен восстановить порядок
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		_, err := db.ExecContext(ctx,
			`INSERT INTO `+table+` (flight_number, launch_site, payload_mass_kg, booster_version_category, class)
			VALUES ($1, $2, $3, $4, $5)`,
			row.flight, row.site, row.payload, row.booster, row.class,
		)
		if err != nil {
			t.Fatalf("insert launch: %v", err)
		}
	}
}

func newS3Client(t *testing.T, ctx context.Context, env integrationEnv) *s3.Client {
	t.Helper()
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(env.s3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			env.s3AccessKey,
			env.s3SecretKey,
			"",
		)),
	)
	if err != nil {
		t.Fatalf("load aws config: %v", err)
	}
	return s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		options.BaseEndpoint = &env.s3Endpoint
		options.UsePathStyle = env.s3UsePathStyle
	})
}

func ensureS3Bucket(t *testing.T, ctx context.Context, client *s3.Client, bucket string) {
	t.Helper()
	_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: &bucket,
	})
	if err != nil && !isBucketExistsError(err) {
		t.Fatalf("create bucket: %v", err)
	}
}

func isBucketExistsError(err error) bool {
	var alreadyOwned *s3types.BucketAlreadyOwnedByYou
	var alreadyExists *s3types.BucketAlreadyExists
	if errors.As(err, &alreadyOwned) || errors.As(err, &alreadyExists) {
		return true
	}
	if strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") || strings.Contains(err.Error(), "BucketAlreadyExists") {
		return true
	}
	return false
}

func newDynamoClient(t *testing.T, ctx context.Context, env integrationEnv) *dynamodb.Client {
	t.Helper()
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(env.dynamoRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			env.dynamoAccessKey,
			env.dynamoSecretKey,
			"",
		)),
	)
	if err != nil {
		t.Fatalf("load dynamo config: %v", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(options *dynamodb.Options) {
		options.BaseEndpoint = &env.dynamoEndpoint
	})
}

func ensureDynamoTable(t *testing.T, ctx context.Context, client *dynamodb.Client, table string) {
	t.Helper()

	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: &table,
	})
	if err == nil {
		return
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbtypes.AttributeDefinition{
			{AttributeName: stringPtr("flight_number"), AttributeType: ddbtypes.ScalarAttributeTypeN},
		},
		KeySchema: []ddbtypes.KeySchemaElement{
			{AttributeName: stringPtr("flight_number"), KeyType: ddbtypes.KeyTypeHash},
		},
		BillingMode: ddbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		t.Fatalf("create dynamodb table: %v", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: &table}, 30*time.Second); err != nil {
		t.Fatalf("wait for table: %v", err)
	}
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func stringPtr(value string) *string {
	return &value
}
