package cloudwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

const (
	// CloudWatch limits
	maxMetricsPerRequest = 1000
	maxRetries           = 3
	initialBackoff       = 100 * time.Millisecond
)

// Имена метрик callback'ов
const (
	MetricCallbackDuration = "CallbackDuration"
	MetricCallbackPoints   = "CallbackPoints"
	MetricEmptyCharts      = "EmptyCharts"
	MetricCallbackErrors   = "CallbackErrors"
)

// putMetricDataAPI - часть cloudwatch.Client, которая нужна publisher'у
type putMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsPublisherConfig holds configuration for CloudWatch metrics publishing.
type MetricsPublisherConfig struct {
	Namespace         string            // CloudWatch namespace (e.g., "SpaceXDashboard/Callbacks")
	Region            string            // AWS region (e.g., "us-east-1")
	Endpoint          string            // Optional endpoint override (for LocalStack)
	AccessKeyID       string            // AWS access key
	SecretAccessKey   string            // AWS secret key
	DefaultDimensions map[string]string // Default dimensions added to all metrics
	BufferSize        int               // Buffer size before auto-flush
	FlushInterval     time.Duration     // Automatic flush interval
}

// MetricsPublisher publishes callback metrics to AWS CloudWatch.
// Implements port.CallbackMetricsPublisher.
type MetricsPublisher struct {
	client            putMetricDataAPI
	namespace         string
	defaultDimensions map[string]string

	buffer     []port.CallbackMetric
	bufferSize int
	mu         sync.Mutex

	flushTicker *time.Ticker
	stopCh      chan struct{}
	wg          sync.WaitGroup
	logger      *logger.Logger
}

func (c *MetricsPublisherConfig) validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 100
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 10 * time.Second
	}
	return nil
}

// NewMetricsPublisher creates a new CloudWatch metrics publisher.
func NewMetricsPublisher(ctx context.Context, cfg MetricsPublisherConfig, log *logger.Logger) (*MetricsPublisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	awsCfg, err := buildAWSConfig(ctx, cfg.Region, cfg.Endpoint, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	p := newMetricsPublisher(cloudwatch.NewFromConfig(awsCfg), cfg, log)

	// Start background flush goroutine
	p.flushTicker = time.NewTicker(cfg.FlushInterval)
	p.wg.Add(1)
	go p.flushLoop()

	return p, nil
}

func newMetricsPublisher(client putMetricDataAPI, cfg MetricsPublisherConfig, log *logger.Logger) *MetricsPublisher {
	return &MetricsPublisher{
		client:            client,
		namespace:         cfg.Namespace,
		defaultDimensions: cfg.DefaultDimensions,
		buffer:            make([]port.CallbackMetric, 0, cfg.BufferSize),
		bufferSize:        cfg.BufferSize,
		stopCh:            make(chan struct{}),
		logger:            log,
	}
}

// RecordCallback buffers a metric; the buffer is flushed when full or on tick.
func (p *MetricsPublisher) RecordCallback(ctx context.Context, metric port.CallbackMetric) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffer = append(p.buffer, metric)

	if len(p.buffer) >= p.bufferSize {
		if err := p.flushBufferUnsafe(ctx); err != nil {
			return fmt.Errorf("failed to flush buffer: %w", err)
		}
	}

	return nil
}

// Flush forces immediate publication of all buffered metrics.
func (p *MetricsPublisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.flushBufferUnsafe(ctx)
}

// Close stops the background flush goroutine and flushes remaining metrics.
func (p *MetricsPublisher) Close(ctx context.Context) error {
	close(p.stopCh)
	if p.flushTicker != nil {
		p.flushTicker.Stop()
	}
	p.wg.Wait()

	return p.Flush(ctx)
}

func (p *MetricsPublisher) flushLoop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.flushTicker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := p.Flush(ctx); err != nil {
				// повторим на следующем тике
				p.logger.Warn("CloudWatch metrics flush failed", "error", err.Error())
			}
			cancel()
		case <-p.stopCh:
			return
		}
	}
}

// flushBufferUnsafe flushes the buffer without locking (caller must hold lock).
func (p *MetricsPublisher) flushBufferUnsafe(ctx context.Context) error {
	if len(p.buffer) == 0 {
		return nil
	}

	data := make([]types.MetricDatum, 0, len(p.buffer)*4)
	for _, metric := range p.buffer {
		data = append(data, p.convertToData(metric)...)
	}

	// Publish in chunks (CloudWatch limit: 1000 metrics/request)
	for i := 0; i < len(data); i += maxMetricsPerRequest {
		end := i + maxMetricsPerRequest
		if end > len(data) {
			end = len(data)
		}

		if err := p.publishBatchWithRetry(ctx, data[i:end]); err != nil {
			return fmt.Errorf("failed to publish chunk: %w", err)
		}
	}

	p.buffer = p.buffer[:0]

	return nil
}

// publishBatchWithRetry publishes a batch of metrics with exponential backoff retry.
func (p *MetricsPublisher) publishBatchWithRetry(ctx context.Context, data []types.MetricDatum) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(p.namespace),
			MetricData: data,
		})
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt < maxRetries-1 {
			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// convertToData превращает одно выполнение правила в четыре точки CloudWatch
func (p *MetricsPublisher) convertToData(metric port.CallbackMetric) []types.MetricDatum {
	dimensions := make([]types.Dimension, 0, len(p.defaultDimensions)+2)
	for key, value := range p.defaultDimensions {
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String(key),
			Value: aws.String(value),
		})
	}
	dimensions = append(dimensions,
		types.Dimension{Name: aws.String("Rule"), Value: aws.String(metric.Rule)},
		types.Dimension{Name: aws.String("Trigger"), Value: aws.String(metric.Trigger)},
	)

	timestamp := aws.Time(metric.Timestamp)
	datum := func(name string, value float64, unit types.StandardUnit) types.MetricDatum {
		return types.MetricDatum{
			MetricName: aws.String(name),
			Value:      aws.Float64(value),
			Unit:       unit,
			Timestamp:  timestamp,
			Dimensions: dimensions,
		}
	}

	return []types.MetricDatum{
		datum(MetricCallbackDuration, float64(metric.Duration.Microseconds())/1000, types.StandardUnitMilliseconds),
		datum(MetricCallbackPoints, float64(metric.Points), types.StandardUnitCount),
		datum(MetricEmptyCharts, boolToFloat(metric.Empty), types.StandardUnitCount),
		datum(MetricCallbackErrors, boolToFloat(metric.Failed), types.StandardUnitCount),
	}
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// buildAWSConfig creates an AWS config with credentials.
func buildAWSConfig(ctx context.Context, region, endpoint, accessKeyID, secretAccessKey string) (aws.Config, error) {
	optFns := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	if accessKeyID != "" && secretAccessKey != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, err
	}

	// Override endpoint if specified (for LocalStack testing)
	if endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
	}

	return cfg, nil
}
