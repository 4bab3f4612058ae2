package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	Dashboard  DashboardConfig
	Security   SecurityConfig
	NATS       NATSConfig
	CloudWatch CloudWatchConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr возвращает адрес для http.Server
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// DatasetSource определяет, откуда загружается таблица запусков
type DatasetSource string

const (
	DatasetSourceCSV      DatasetSource = "csv"
	DatasetSourceS3       DatasetSource = "s3"
	DatasetSourcePostgres DatasetSource = "postgres"
	DatasetSourceDynamoDB DatasetSource = "dynamodb"
)

type DatasetConfig struct {
	Source   DatasetSource
	Path     string
	S3       S3Config
	Database DatabaseConfig
	DynamoDB DynamoDBConfig
}

type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Table    string
	SSLMode  string
}

type DynamoDBConfig struct {
	TableName       string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type DashboardConfig struct {
	// ScatterFilterMode: "legacy" игнорирует диапазон payload при выборе площадки,
	// "strict" применяет оба фильтра.
	ScatterFilterMode string
}

type SecurityConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustedProxies - адреса reverse proxy, чьим X-Forwarded-For можно верить.
	// Пусто: клиент определяется только по RemoteAddr
	TrustedProxies []netip.Prefix
}

type NATSConfig struct {
	Enabled bool
	URL     string
	Subject string
}

type CloudWatchConfig struct {
	Enabled         bool
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Namespace       string
	LogGroupName    string
	LogStreamName   string
	FlushInterval   time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	rateLimitRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	rateLimitBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	trustedProxies, err := parsePrefixes(splitCSV(getEnv("TRUSTED_PROXIES", "")))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	flushInterval, err := time.ParseDuration(getEnv("CLOUDWATCH_FLUSH_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOUDWATCH_FLUSH_INTERVAL: %w", err)
	}

	port := getEnv("SERVER_PORT", "8050")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Port:            port,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: DatasetSource(strings.ToLower(getEnv("DATASET_SOURCE", string(DatasetSourceCSV)))),
			Path:   getEnv("DATASET_PATH", "spacex_launch_dash.csv"),
			S3: S3Config{
				Bucket:          getEnv("DATASET_S3_BUCKET", ""),
				Key:             getEnv("DATASET_S3_KEY", "spacex_launch_dash.csv"),
				Region:          getEnv("DATASET_S3_REGION", "us-east-1"),
				Endpoint:        getEnv("DATASET_S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("DATASET_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("DATASET_S3_SECRET_ACCESS_KEY", ""),
				UsePathStyle:    getEnvBool("DATASET_S3_USE_PATH_STYLE", false),
			},
			Database: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				Database: getEnv("DB_NAME", "spacex"),
				Table:    getEnv("DB_TABLE", "spacex_launches"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
			DynamoDB: DynamoDBConfig{
				TableName:       getEnv("DYNAMODB_TABLE", "spacex_launches"),
				Region:          getEnv("DYNAMODB_REGION", "us-east-1"),
				Endpoint:        getEnv("DYNAMODB_ENDPOINT", ""),
				AccessKeyID:     getEnv("DYNAMODB_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("DYNAMODB_SECRET_ACCESS_KEY", ""),
			},
		},
		Dashboard: DashboardConfig{
			ScatterFilterMode: strings.ToLower(getEnv("SCATTER_PAYLOAD_FILTER", "legacy")),
		},
		Security: SecurityConfig{
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:"+port+",http://127.0.0.1:"+port)),
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
			TrustedProxies: trustedProxies,
		},
		NATS: NATSConfig{
			Enabled: getEnvBool("NATS_ENABLED", false),
			URL:     getEnv("NATS_URL", "nats://127.0.0.1:4222"),
			Subject: getEnv("NATS_SUBJECT", "dashboard.interactions"),
		},
		CloudWatch: CloudWatchConfig{
			Enabled:         getEnvBool("CLOUDWATCH_ENABLED", false),
			Region:          getEnv("CLOUDWATCH_REGION", "us-east-1"),
			Endpoint:        getEnv("CLOUDWATCH_ENDPOINT", ""),
			AccessKeyID:     getEnv("CLOUDWATCH_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("CLOUDWATCH_SECRET_ACCESS_KEY", ""),
			Namespace:       getEnv("CLOUDWATCH_NAMESPACE", "SpaceXDashboard/Callbacks"),
			LogGroupName:    getEnv("CLOUDWATCH_LOG_GROUP", ""),
			LogStreamName:   getEnv("CLOUDWATCH_LOG_STREAM", "spacex-dashboard"),
			FlushInterval:   flushInterval,
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case DatasetSourceCSV:
		if strings.TrimSpace(c.Dataset.Path) == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=csv")
		}
	case DatasetSourceS3:
		if strings.TrimSpace(c.Dataset.S3.Bucket) == "" {
			return fmt.Errorf("DATASET_S3_BUCKET is required when DATASET_SOURCE=s3")
		}
	case DatasetSourcePostgres, DatasetSourceDynamoDB:
	default:
		return fmt.Errorf("unsupported DATASET_SOURCE: %s", c.Dataset.Source)
	}

	switch c.Dashboard.ScatterFilterMode {
	case "legacy", "strict":
	default:
		return fmt.Errorf("invalid SCATTER_PAYLOAD_FILTER: %s", c.Dashboard.ScatterFilterMode)
	}

	if c.Security.RateLimitRPS <= 0 || c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// parsePrefixes принимает CIDR ("10.0.0.0/8") и одиночные адреса ("127.0.0.1")
func parsePrefixes(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, value := range values {
		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(value)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
