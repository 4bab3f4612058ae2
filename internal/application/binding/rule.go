package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// ComponentID - идентификатор элемента страницы
type ComponentID string

const (
	SiteDropdown  ComponentID = "site-dropdown"
	PayloadSlider ComponentID = "payload-slider"
	PieChart      ComponentID = "success-pie-chart"
	ScatterChart  ComponentID = "success-payload-scatter-chart"
)

// ErrUnknownTrigger возвращается для событий от элемента, на который не подписано ни одно правило
var ErrUnknownTrigger = errors.New("unknown trigger")

// State - текущие значения элементов управления одной сессии
type State struct {
	Site valueobject.SiteSelection
	Low  float64
	High float64
}

// InitialState возвращает состояние при загрузке страницы: все площадки и полный диапазон payload
func InitialState(table *entity.LaunchTable) State {
	return State{
		Site: valueobject.NewSiteSelection(valueobject.AllSites),
		Low:  table.MinPayload(),
		High: table.MaxPayload(),
	}
}

// Handler пересчитывает один график по состоянию
type Handler func(ctx context.Context, state State) (chart.Spec, error)

// Rule связывает набор триггеров с выходным графиком
type Rule struct {
	Name     string
	Triggers []ComponentID
	Output   ComponentID
	Handler  Handler
}

// TriggeredBy сообщает, подписано ли правило на элемент
func (r Rule) TriggeredBy(id ComponentID) bool {
	for _, trigger := range r.Triggers {
		if trigger == id {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	if r.Name == "" {
		return errors.New("rule name is required")
	}
	if len(r.Triggers) == 0 {
		return fmt.Errorf("rule %s: at least one trigger is required", r.Name)
	}
	if r.Output == "" {
		return fmt.Errorf("rule %s: output is required", r.Name)
	}
	if r.Handler == nil {
		return fmt.Errorf("rule %s: handler is required", r.Name)
	}
	return nil
}

// Update - результат одного правила для выходного элемента
type Update struct {
	Rule   string
	Target ComponentID
	Spec   chart.Spec
	Err    error
}
