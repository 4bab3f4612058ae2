package binding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

type emitted struct {
	eventID string
	updates []Update
}

func collectingEmitter(out chan<- emitted) Emitter {
	return func(_ context.Context, eventID string, updates []Update) error {
		out <- emitted{eventID: eventID, updates: updates}
		return nil
	}
}

func receive(t *testing.T, ch <-chan emitted) emitted {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for session output")
		return emitted{}
	}
}

func TestSessionEmitsInitialChartsThenEventsInOrder(t *testing.T) {
	table, _, scatter := newDashboard(t)
	out := make(chan emitted, 8)
	session := NewSession("s1", table, allState(), collectingEmitter(out), logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- session.Run(ctx) }()

	initial := receive(t, out)
	if diff := cmp.Diff(table.Initial(ctx, allState()), initial.updates); diff != "" {
		t.Fatalf("initial updates mismatch (-want +got):\n%s", diff)
	}

	events := []Event{
		{ID: "1", Source: SiteDropdown, Site: "KSC LC-39A"},
		{ID: "2", Source: PayloadSlider, Low: 2000, High: 8000},
		{ID: "3", Source: SiteDropdown, Site: ""},
	}
	for _, e := range events {
		if err := session.Submit(ctx, e); err != nil {
			t.Fatalf("Submit error = %v", err)
		}
	}

	for i, e := range events {
		got := receive(t, out)
		if got.eventID != e.ID {
			t.Fatalf("event %d: expected id %s, got %s", i, e.ID, got.eventID)
		}
	}

	// initial + initial-for-comparison + 3 events
	if len(scatter.calls) != 5 {
		t.Fatalf("expected 5 scatter calls, got %d", len(scatter.calls))
	}
	last := scatter.calls[4]
	if !last.Site.IsAll() || last.Low != 2000 || last.High != 8000 {
		t.Fatalf("state not carried between events: %+v", last)
	}

	session.Close()
	if err := <-errCh; err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if err := session.Submit(context.Background(), events[0]); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionRejectsUnknownSource(t *testing.T) {
	table, _, _ := newDashboard(t)
	out := make(chan emitted, 4)
	session := NewSession("s2", table, allState(), collectingEmitter(out), logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = session.Run(ctx) }()

	receive(t, out)
	if err := session.Submit(ctx, Event{ID: "x", Source: "launch-button"}); err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	got := receive(t, out)
	if len(got.updates) != 1 || !errors.Is(got.updates[0].Err, ErrUnknownTrigger) {
		t.Fatalf("expected unknown trigger error update, got %+v", got.updates)
	}
}

func TestSessionStopsOnContextCancel(t *testing.T) {
	table, _, _ := newDashboard(t)
	out := make(chan emitted, 4)
	session := NewSession("s3", table, allState(), collectingEmitter(out), logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- session.Run(ctx) }()

	receive(t, out)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not stop")
	}
}
