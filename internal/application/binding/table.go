package binding

import (
	"context"
	"fmt"
	"time"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// Callback описывает одно выполнение правила, передается наблюдателям
type Callback struct {
	Rule     string
	Trigger  ComponentID
	Target   ComponentID
	State    State
	Duration time.Duration
	Spec     chart.Spec
	Err      error
}

// Observer получает сведения о каждом выполненном правиле
type Observer interface {
	CallbackCompleted(ctx context.Context, cb Callback)
}

// InitialTrigger - псевдо-триггер загрузки страницы
const InitialTrigger ComponentID = "initial"

// Table - явная таблица правил: триггер -> обработчик -> выход
type Table struct {
	rules     []Rule
	observers []Observer
}

// NewTable проверяет правила и создает таблицу. Выходы правил не должны пересекаться
func NewTable(rules ...Rule) (*Table, error) {
	outputs := make(map[ComponentID]string, len(rules))
	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, err
		}
		if owner, ok := outputs[rule.Output]; ok {
			return nil, fmt.Errorf("output %s is bound by both %s and %s", rule.Output, owner, rule.Name)
		}
		outputs[rule.Output] = rule.Name
	}

	copied := make([]Rule, len(rules))
	copy(copied, rules)

	return &Table{rules: copied}, nil
}

// Observe добавляет наблюдателя. Вызывать до начала обработки событий
func (t *Table) Observe(observer Observer) {
	if observer != nil {
		t.observers = append(t.observers, observer)
	}
}

// Rules возвращает копию правил
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Triggers возвращает все элементы, на которые подписано хотя бы одно правило
func (t *Table) Triggers() []ComponentID {
	seen := make(map[ComponentID]struct{})
	out := make([]ComponentID, 0)
	for _, rule := range t.rules {
		for _, trigger := range rule.Triggers {
			if _, ok := seen[trigger]; ok {
				continue
			}
			seen[trigger] = struct{}{}
			out = append(out, trigger)
		}
	}
	return out
}

// Dispatch выполняет все правила, подписанные на trigger, в порядке таблицы
func (t *Table) Dispatch(ctx context.Context, state State, trigger ComponentID) ([]Update, error) {
	updates := make([]Update, 0, len(t.rules))
	for _, rule := range t.rules {
		if rule.TriggeredBy(trigger) {
			updates = append(updates, t.run(ctx, rule, state, trigger))
		}
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrigger, trigger)
	}

	return updates, nil
}

// Initial выполняет все правила, как при загрузке страницы
func (t *Table) Initial(ctx context.Context, state State) []Update {
	updates := make([]Update, 0, len(t.rules))
	for _, rule := range t.rules {
		updates = append(updates, t.run(ctx, rule, state, InitialTrigger))
	}
	return updates
}

func (t *Table) run(ctx context.Context, rule Rule, state State, trigger ComponentID) Update {
	started := time.Now()
	spec, err := rule.Handler(ctx, state)
	elapsed := time.Since(started)

	for _, observer := range t.observers {
		observer.CallbackCompleted(ctx, Callback{
			Rule:     rule.Name,
			Trigger:  trigger,
			Target:   rule.Output,
			State:    state,
			Duration: elapsed,
			Spec:     spec,
			Err:      err,
		})
	}

	return Update{Rule: rule.Name, Target: rule.Output, Spec: spec, Err: err}
}

// PieSource - источник pie графика (use case)
type PieSource interface {
	Execute(ctx context.Context, site valueobject.SiteSelection) (chart.Spec, error)
}

// ScatterSource - источник scatter графика (use case)
type ScatterSource interface {
	Execute(ctx context.Context, site valueobject.SiteSelection, low, high float64) (chart.Spec, error)
}

// Названия правил дашборда
const (
	RulePie     = "pie"
	RuleScatter = "scatter"
)

// NewDashboardTable собирает два правила дашборда:
// site-dropdown -> pie; site-dropdown, payload-slider -> scatter
func NewDashboardTable(pie PieSource, scatter ScatterSource) (*Table, error) {
	return NewTable(
		Rule{
			Name:     RulePie,
			Triggers: []ComponentID{SiteDropdown},
			Output:   PieChart,
			Handler: func(ctx context.Context, state State) (chart.Spec, error) {
				return pie.Execute(ctx, state.Site)
			},
		},
		Rule{
			Name:     RuleScatter,
			Triggers: []ComponentID{SiteDropdown, PayloadSlider},
			Output:   ScatterChart,
			Handler: func(ctx context.Context, state State) (chart.Spec, error) {
				return scatter.Execute(ctx, state.Site, state.Low, state.High)
			},
		},
	)
}
