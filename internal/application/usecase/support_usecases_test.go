package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

func TestTrackInteraction_RecordsAndPublishes(t *testing.T) {
	metrics := &mockMetrics{}
	failing := &mockMetrics{err: errBoom}
	publisher := &mockPublisher{}
	uc := NewTrackInteractionUseCase(publisher, logger.New("error"), metrics, failing)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	uc.CallbackCompleted(context.Background(), binding.Callback{
		Rule:     binding.RuleScatter,
		Trigger:  binding.PayloadSlider,
		Target:   binding.ScatterChart,
		State:    binding.State{Site: valueobject.NewSiteSelection("ALL"), Low: 1000, High: 5000},
		Duration: 1500 * time.Microsecond,
		Spec: chart.Spec{Kind: chart.KindScatter, Series: []chart.Series{
			{Name: "FT", Points: []chart.Point{{X: 2000, Y: 1}, {X: 3000, Y: 0}}},
		}},
	})

	if len(metrics.metrics) != 1 || len(failing.metrics) != 1 {
		t.Fatalf("expected every sink to receive the metric")
	}
	m := metrics.metrics[0]
	if m.Rule != "scatter" || m.Trigger != "payload-slider" || m.Points != 2 || m.Failed {
		t.Fatalf("unexpected metric: %+v", m)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.events))
	}
	e := publisher.events[0]
	if e.ID == "" || e.Site != "ALL" || e.Range != [2]float64{1000, 5000} || e.DurationMs != 1.5 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !e.OccurredAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", e.OccurredAt)
	}

	uc.Flush(context.Background())
	if metrics.flushed != 1 {
		t.Fatalf("expected flush")
	}
}

func TestTrackInteraction_FailedCallback(t *testing.T) {
	publisher := &mockPublisher{}
	uc := NewTrackInteractionUseCase(publisher, logger.New("error"))

	uc.CallbackCompleted(context.Background(), binding.Callback{Rule: "pie", Err: errBoom})

	if len(publisher.events) != 1 || publisher.events[0].Error != "boom" {
		t.Fatalf("expected error in event, got %+v", publisher.events)
	}
}

func TestLoadLaunchTable(t *testing.T) {
	table := newTestTable(t)

	uc := NewLoadLaunchTableUseCase(&stubRepository{table: table}, logger.New("error"))
	got, err := uc.Execute(context.Background())
	if err != nil || got != table {
		t.Fatalf("expected table, got %v (err %v)", got, err)
	}

	uc = NewLoadLaunchTableUseCase(&stubRepository{err: errBoom}, logger.New("error"))
	_, err = uc.Execute(context.Background())
	if !errors.Is(err, entity.ErrLoad) || !errors.Is(err, errBoom) {
		t.Fatalf("expected LoadError wrapping cause, got %v", err)
	}
}

func TestBuildLaunchReport(t *testing.T) {
	uc := NewBuildLaunchReportUseCase(newTestTable(t), "stub", service.NewLaunchStatistics())

	report, err := uc.Execute(context.Background(), BuildLaunchReportCommand{Kind: ReportBySite})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if report.Total != 8 || len(report.Rows) != 4 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Best == nil || report.Best.Key != "CCAFS SLC-40" || report.Best.Rate != 1 {
		t.Fatalf("unexpected best site: %+v", report.Best)
	}

	payload, err := uc.Execute(context.Background(), BuildLaunchReportCommand{Kind: ReportByPayload, BandWidth: 5000})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(payload.Rows) != 2 || payload.Rows[0].Key != "0-5000" {
		t.Fatalf("unexpected payload bands: %+v", payload.Rows)
	}

	if _, err := uc.Execute(context.Background(), BuildLaunchReportCommand{Kind: ReportByPayload}); err == nil {
		t.Fatalf("expected error for zero band width")
	}
	if _, err := uc.Execute(context.Background(), BuildLaunchReportCommand{Kind: "orbits"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
