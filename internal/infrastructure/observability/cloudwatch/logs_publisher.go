package cloudwatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	applicationPort "github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

const (
	// CloudWatch Logs limits
	maxLogEventsPerRequest = 10000
	maxLogEventSize        = 256000 // 256 KB
)

type logsAPI interface {
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
}

// LogsPublisherConfig holds configuration for CloudWatch logs publishing.
type LogsPublisherConfig struct {
	LogGroupName    string // CloudWatch log group name
	LogStreamName   string // CloudWatch log stream name
	Region          string // AWS region
	Endpoint        string // Optional endpoint override (for LocalStack)
	AccessKeyID     string // AWS access key
	SecretAccessKey string // AWS secret key
	BufferSize      int    // Buffer size before a flush is requested
	FlushInterval   time.Duration
	AutoCreate      bool // Automatically create log group/stream if missing
}

func (c *LogsPublisherConfig) validate() error {
	if c.LogGroupName == "" {
		return fmt.Errorf("log group name is required")
	}
	if c.LogStreamName == "" {
		return fmt.Errorf("log stream name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 50
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 5 * time.Second
	}
	return nil
}

// LogsPublisher forwards application log entries to AWS CloudWatch Logs.
// Publish only buffers; network calls happen in the background flush loop.
type LogsPublisher struct {
	client        logsAPI
	logGroupName  string
	logStreamName string

	buffer     []applicationPort.LogEntry
	bufferSize int
	mu         sync.Mutex

	sequenceToken *string

	flushCh  chan struct{}
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewLogsPublisher creates a new CloudWatch logs publisher and starts its flush loop.
func NewLogsPublisher(ctx context.Context, cfg LogsPublisherConfig) (*LogsPublisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	awsCfg, err := buildAWSConfig(ctx, cfg.Region, cfg.Endpoint, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	p := newLogsPublisher(cloudwatchlogs.NewFromConfig(awsCfg), cfg)

	if cfg.AutoCreate {
		if err := p.ensureLogGroupAndStream(ctx); err != nil {
			return nil, fmt.Errorf("failed to create log group/stream: %w", err)
		}
	}

	p.wg.Add(1)
	go p.flushLoop()

	return p, nil
}

func newLogsPublisher(client logsAPI, cfg LogsPublisherConfig) *LogsPublisher {
	return &LogsPublisher{
		client:        client,
		logGroupName:  cfg.LogGroupName,
		logStreamName: cfg.LogStreamName,
		buffer:        make([]applicationPort.LogEntry, 0, cfg.BufferSize),
		bufferSize:    cfg.BufferSize,
		flushCh:       make(chan struct{}, 1),
		interval:      cfg.FlushInterval,
		stopCh:        make(chan struct{}),
	}
}

// Publish buffers a single log entry.
func (p *LogsPublisher) Publish(_ context.Context, entry applicationPort.LogEntry) error {
	p.mu.Lock()
	p.buffer = append(p.buffer, entry)
	full := len(p.buffer) >= p.bufferSize
	p.mu.Unlock()

	if full {
		select {
		case p.flushCh <- struct{}{}:
		default:
		}
	}

	return nil
}

// Hook returns a logger hook that forwards every emitted entry.
func (p *LogsPublisher) Hook() logger.Hook {
	return func(e logger.Entry) {
		_ = p.Publish(context.Background(), applicationPort.LogEntry{
			Timestamp: e.Timestamp,
			Level:     e.Level.String(),
			Message:   e.Message,
			Fields:    e.Fields,
		})
	}
}

// Flush forces immediate publication of all buffered log entries.
func (p *LogsPublisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.flushBufferUnsafe(ctx)
}

// Close stops the background flush goroutine and flushes remaining logs.
func (p *LogsPublisher) Close(ctx context.Context) error {
	close(p.stopCh)
	p.wg.Wait()

	return p.Flush(ctx)
}

func (p *LogsPublisher) flushLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-p.flushCh:
		case <-p.stopCh:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		// ошибку не логируем: лог сам уходит в этот publisher
		_ = p.Flush(ctx)
		cancel()
	}
}

// flushBufferUnsafe flushes the buffer without locking (caller must hold lock).
func (p *LogsPublisher) flushBufferUnsafe(ctx context.Context) error {
	if len(p.buffer) == 0 {
		return nil
	}

	// CloudWatch Logs требует сортировку по времени
	sort.SliceStable(p.buffer, func(i, j int) bool {
		return p.buffer[i].Timestamp.Before(p.buffer[j].Timestamp)
	})

	events := make([]types.InputLogEvent, 0, len(p.buffer))
	for _, entry := range p.buffer {
		event, err := convertToLogEvent(entry)
		if err != nil {
			continue
		}
		events = append(events, event)
	}

	for i := 0; i < len(events); i += maxLogEventsPerRequest {
		end := i + maxLogEventsPerRequest
		if end > len(events) {
			end = len(events)
		}

		if err := p.publishLogEventsWithRetry(ctx, events[i:end]); err != nil {
			return fmt.Errorf("failed to publish chunk: %w", err)
		}
	}

	p.buffer = p.buffer[:0]

	return nil
}

// publishLogEventsWithRetry publishes log events with retry logic.
func (p *LogsPublisher) publishLogEventsWithRetry(ctx context.Context, events []types.InputLogEvent) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		output, err := p.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
			LogGroupName:  aws.String(p.logGroupName),
			LogStreamName: aws.String(p.logStreamName),
			LogEvents:     events,
			SequenceToken: p.sequenceToken,
		})
		if err == nil {
			p.sequenceToken = output.NextSequenceToken
			return nil
		}

		var invalidSeqErr *types.InvalidSequenceTokenException
		if errors.As(err, &invalidSeqErr) {
			p.sequenceToken = invalidSeqErr.ExpectedSequenceToken
			continue
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

// convertToLogEvent converts a LogEntry to CloudWatch InputLogEvent.
func convertToLogEvent(entry applicationPort.LogEntry) (types.InputLogEvent, error) {
	logData := map[string]interface{}{
		"timestamp": entry.Timestamp.Format(time.RFC3339Nano),
		"level":     entry.Level,
		"message":   entry.Message,
	}
	if len(entry.Fields) > 0 {
		logData["fields"] = entry.Fields
	}

	messageJSON, err := json.Marshal(logData)
	if err != nil {
		return types.InputLogEvent{}, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	message := string(messageJSON)
	if len(message) > maxLogEventSize {
		message = message[:maxLogEventSize-3] + "..."
	}

	return types.InputLogEvent{
		Message:   aws.String(message),
		Timestamp: aws.Int64(entry.Timestamp.UnixMilli()),
	}, nil
}

// ensureLogGroupAndStream creates the log group and stream if they don't exist.
func (p *LogsPublisher) ensureLogGroupAndStream(ctx context.Context) error {
	var alreadyExists *types.ResourceAlreadyExistsException

	_, err := p.client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(p.logGroupName),
	})
	if err != nil && !errors.As(err, &alreadyExists) {
		return fmt.Errorf("failed to create log group: %w", err)
	}

	_, err = p.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(p.logGroupName),
		LogStreamName: aws.String(p.logStreamName),
	})
	if err != nil && !errors.As(err, &alreadyExists) {
		return fmt.Errorf("failed to create log stream: %w", err)
	}

	return nil
}
