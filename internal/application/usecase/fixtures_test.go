package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

func newTestTable(t *testing.T) *entity.LaunchTable {
	t.Helper()

	rows := []struct {
		site    string
		payload float64
		booster string
		class   int
	}{
		{"CCAFS LC-40", 0, "v1.0", 0},
		{"CCAFS LC-40", 525, "v1.0", 0},
		{"VAFB SLC-4E", 500, "v1.1", 0},
		{"KSC LC-39A", 2490, "FT", 1},
		{"KSC LC-39A", 5300, "FT", 1},
		{"CCAFS SLC-40", 3600, "FT", 1},
		{"VAFB SLC-4E", 9600, "FT", 1},
		{"KSC LC-39A", 3310, "B5", 0},
	}

	records := make([]*entity.LaunchRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := entity.NewLaunchRecord(r.site, r.payload, r.booster, r.class)
		if err != nil {
			t.Fatalf("NewLaunchRecord error = %v", err)
		}
		records = append(records, rec)
	}

	table, err := entity.NewLaunchTable(records)
	if err != nil {
		t.Fatalf("NewLaunchTable error = %v", err)
	}
	return table
}

type stubRenderer struct {
	err error
}

func (r *stubRenderer) RenderSVG(_ context.Context, spec chart.Spec) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("<svg><title>" + spec.Title + "</title></svg>"), nil
}

type mockMetrics struct {
	mu      sync.Mutex
	metrics []port.CallbackMetric
	flushed int
	err     error
}

func (m *mockMetrics) RecordCallback(_ context.Context, metric port.CallbackMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, metric)
	return m.err
}

func (m *mockMetrics) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushed++
	return nil
}

type mockPublisher struct {
	events []*dto.InteractionEventDTO
}

func (p *mockPublisher) PublishInteraction(_ context.Context, event *dto.InteractionEventDTO) error {
	p.events = append(p.events, event)
	return nil
}

func (p *mockPublisher) Close() error { return nil }

type stubRepository struct {
	table *entity.LaunchTable
	err   error
}

func (r *stubRepository) LoadTable(context.Context) (*entity.LaunchTable, error) {
	return r.table, r.err
}

func (r *stubRepository) Source() string { return "stub://launches" }

var errBoom = errors.New("boom")
