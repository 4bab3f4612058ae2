package binding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

type fakePie struct {
	calls []valueobject.SiteSelection
}

func (f *fakePie) Execute(_ context.Context, site valueobject.SiteSelection) (chart.Spec, error) {
	f.calls = append(f.calls, site)
	return chart.Spec{Kind: chart.KindPie, Title: "pie " + site.String()}, nil
}

type fakeScatter struct {
	calls []State
	err   error
}

func (f *fakeScatter) Execute(_ context.Context, site valueobject.SiteSelection, low, high float64) (chart.Spec, error) {
	f.calls = append(f.calls, State{Site: site, Low: low, High: high})
	if f.err != nil {
		return chart.Spec{}, f.err
	}
	return chart.Spec{Kind: chart.KindScatter, Title: "scatter " + site.String()}, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	callbacks []Callback
}

func (o *recordingObserver) CallbackCompleted(_ context.Context, cb Callback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.callbacks = append(o.callbacks, cb)
}

func newDashboard(t *testing.T) (*Table, *fakePie, *fakeScatter) {
	t.Helper()
	pie := &fakePie{}
	scatter := &fakeScatter{}
	table, err := NewDashboardTable(pie, scatter)
	if err != nil {
		t.Fatalf("NewDashboardTable error = %v", err)
	}
	return table, pie, scatter
}

func allState() State {
	return State{Site: valueobject.NewSiteSelection("ALL"), Low: 0, High: 9600}
}

func TestDispatchSiteDropdownRunsBothRules(t *testing.T) {
	table, pie, scatter := newDashboard(t)

	updates, err := table.Dispatch(context.Background(), allState(), SiteDropdown)
	if err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}

	targets := []ComponentID{}
	for _, u := range updates {
		targets = append(targets, u.Target)
	}
	if diff := cmp.Diff([]ComponentID{PieChart, ScatterChart}, targets); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
	if len(pie.calls) != 1 || len(scatter.calls) != 1 {
		t.Fatalf("expected one call per rule, got pie=%d scatter=%d", len(pie.calls), len(scatter.calls))
	}
}

func TestDispatchPayloadSliderRunsOnlyScatter(t *testing.T) {
	table, pie, scatter := newDashboard(t)

	state := allState()
	state.Low, state.High = 2000, 8000
	updates, err := table.Dispatch(context.Background(), state, PayloadSlider)
	if err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}

	if len(updates) != 1 || updates[0].Target != ScatterChart || updates[0].Rule != RuleScatter {
		t.Fatalf("expected only the scatter update, got %+v", updates)
	}
	if len(pie.calls) != 0 {
		t.Fatalf("pie rule must not run on slider change")
	}
	if diff := cmp.Diff([]State{state}, scatter.calls); diff != "" {
		t.Fatalf("scatter input mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchUnknownTrigger(t *testing.T) {
	table, _, _ := newDashboard(t)

	_, err := table.Dispatch(context.Background(), allState(), ComponentID("launch-button"))
	if !errors.Is(err, ErrUnknownTrigger) {
		t.Fatalf("expected ErrUnknownTrigger, got %v", err)
	}
}

func TestInitialMatchesExplicitDispatch(t *testing.T) {
	table, _, _ := newDashboard(t)
	ctx := context.Background()

	initial := table.Initial(ctx, allState())
	explicit, err := table.Dispatch(ctx, allState(), SiteDropdown)
	if err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}

	if diff := cmp.Diff(explicit, initial); diff != "" {
		t.Fatalf("initial charts differ from explicit rule output (-dispatch +initial):\n%s", diff)
	}
}

func TestRuleErrorIsReportedPerOutput(t *testing.T) {
	pie := &fakePie{}
	boom := errors.New("boom")
	table, err := NewDashboardTable(pie, &fakeScatter{err: boom})
	if err != nil {
		t.Fatalf("NewDashboardTable error = %v", err)
	}

	updates, err := table.Dispatch(context.Background(), allState(), SiteDropdown)
	if err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}
	if updates[0].Err != nil {
		t.Fatalf("pie update must succeed, got %v", updates[0].Err)
	}
	if !errors.Is(updates[1].Err, boom) {
		t.Fatalf("expected scatter error, got %v", updates[1].Err)
	}
}

func TestObserverSeesEveryCallback(t *testing.T) {
	table, _, _ := newDashboard(t)
	observer := &recordingObserver{}
	table.Observe(observer)

	table.Initial(context.Background(), allState())
	if _, err := table.Dispatch(context.Background(), allState(), PayloadSlider); err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}

	if len(observer.callbacks) != 3 {
		t.Fatalf("expected 3 callbacks, got %d", len(observer.callbacks))
	}
	last := observer.callbacks[2]
	if last.Rule != RuleScatter || last.Trigger != PayloadSlider || last.Target != ScatterChart {
		t.Fatalf("unexpected callback: %+v", last)
	}
	if observer.callbacks[0].Trigger != InitialTrigger {
		t.Fatalf("expected initial trigger, got %s", observer.callbacks[0].Trigger)
	}
}

func TestNewTableRejectsInvalidRules(t *testing.T) {
	handler := func(context.Context, State) (chart.Spec, error) { return chart.Spec{}, nil }

	tests := []struct {
		name  string
		rules []Rule
	}{
		{"no triggers", []Rule{{Name: "a", Output: PieChart, Handler: handler}}},
		{"no handler", []Rule{{Name: "a", Triggers: []ComponentID{SiteDropdown}, Output: PieChart}}},
		{"duplicate output", []Rule{
			{Name: "a", Triggers: []ComponentID{SiteDropdown}, Output: PieChart, Handler: handler},
			{Name: "b", Triggers: []ComponentID{PayloadSlider}, Output: PieChart, Handler: handler},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.rules...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTriggers(t *testing.T) {
	table, _, _ := newDashboard(t)
	if diff := cmp.Diff([]ComponentID{SiteDropdown, PayloadSlider}, table.Triggers()); diff != "" {
		t.Fatalf("triggers mismatch (-want +got):\n%s", diff)
	}
}
