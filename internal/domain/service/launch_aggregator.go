package service

import (
	"fmt"
	"sort"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// ColumnClassCount - колонка с размером группы после группировки
const ColumnClassCount = "class count"

// ScatterFilterMode определяет, как диапазон payload сочетается с выбором площадки
type ScatterFilterMode string

const (
	// ScatterFilterLegacy игнорирует диапазон payload, если выбрана конкретная площадка
	ScatterFilterLegacy ScatterFilterMode = "legacy"
	// ScatterFilterStrict применяет и фильтр площадки, и диапазон payload
	ScatterFilterStrict ScatterFilterMode = "strict"
)

// ParseScatterFilterMode разбирает значение из конфигурации
func ParseScatterFilterMode(raw string) (ScatterFilterMode, error) {
	switch ScatterFilterMode(raw) {
	case ScatterFilterLegacy, "":
		return ScatterFilterLegacy, nil
	case ScatterFilterStrict:
		return ScatterFilterStrict, nil
	default:
		return "", fmt.Errorf("unknown scatter filter mode: %s", raw)
	}
}

// PieData - вход для chart.BuildPie
type PieData struct {
	Frame       chart.Frame
	ValuesField string
	NamesField  string
	Title       string
}

// LaunchAggregator фильтрует и группирует таблицу запусков (Domain Service)
type LaunchAggregator struct {
	scatterMode ScatterFilterMode
}

// NewLaunchAggregator создает новый LaunchAggregator
func NewLaunchAggregator(scatterMode ScatterFilterMode) *LaunchAggregator {
	if scatterMode == "" {
		scatterMode = ScatterFilterLegacy
	}
	return &LaunchAggregator{scatterMode: scatterMode}
}

// ScatterMode возвращает текущий режим фильтрации scatter
func (a *LaunchAggregator) ScatterMode() ScatterFilterMode {
	return a.scatterMode
}

// PieTitle возвращает заголовок pie графика для выбора
func PieTitle(site valueobject.SiteSelection) string {
	if site.IsAll() {
		return "Total Success Launches By Site"
	}
	return fmt.Sprintf("Total Success Launches for Site %s", site)
}

// ScatterTitle возвращает заголовок scatter графика для выбора
func ScatterTitle(site valueobject.SiteSelection) string {
	return fmt.Sprintf("Correlation between Payload and Success for %s", site.Label())
}

// AggregatePie готовит данные pie графика.
// ALL: вся таблица без агрегации, значения - class, имена - Launch Site
// (сумма class по площадке = число успешных запусков).
// Конкретная площадка: строки площадки, сгруппированные по class -> число строк.
func (a *LaunchAggregator) AggregatePie(table *entity.LaunchTable, site valueobject.SiteSelection) (PieData, error) {
	if site.IsAll() {
		return PieData{
			Frame:       recordsFrame(table.Records()),
			ValuesField: entity.ColumnClass,
			NamesField:  entity.ColumnLaunchSite,
			Title:       PieTitle(site),
		}, nil
	}

	if err := validateSite(table, site); err != nil {
		return PieData{}, err
	}

	counts := make(map[valueobject.OutcomeClass]int, 2)
	for _, r := range table.Records() {
		if r.LaunchSite() == site.String() {
			counts[r.Class()]++
		}
	}

	frame := make(chart.Frame, 0, 2)
	for _, class := range valueobject.AllOutcomeClasses() {
		frame = append(frame, chart.Row{
			entity.ColumnLaunchSite: site.String(),
			entity.ColumnClass:      class.Int(),
			ColumnClassCount:        counts[class],
			chart.WeightColumn:      counts[class],
		})
	}

	return PieData{
		Frame:       frame,
		ValuesField: ColumnClassCount,
		NamesField:  entity.ColumnClass,
		Title:       PieTitle(site),
	}, nil
}

// FilterScatter готовит данные scatter графика.
// ALL: строки с low < payload < high в порядке таблицы.
// Конкретная площадка: строки площадки, сгруппированные по
// (payload, booster, class); в режиме legacy диапазон payload не применяется.
func (a *LaunchAggregator) FilterScatter(
	table *entity.LaunchTable,
	site valueobject.SiteSelection,
	payload valueobject.PayloadRange,
) (chart.Frame, error) {
	records := table.Records()

	// маска диапазона считается всегда
	mask := make([]bool, len(records))
	for i, r := range records {
		mask[i] = payload.ContainsExclusive(r.PayloadMass())
	}

	if site.IsAll() {
		selected := make([]*entity.LaunchRecord, 0, len(records))
		for i, r := range records {
			if mask[i] {
				selected = append(selected, r)
			}
		}
		return recordsFrame(selected), nil
	}

	if err := validateSite(table, site); err != nil {
		return nil, err
	}

	selected := make([]*entity.LaunchRecord, 0)
	for i, r := range records {
		if r.LaunchSite() != site.String() {
			continue
		}
		if a.scatterMode == ScatterFilterStrict && !mask[i] {
			continue
		}
		selected = append(selected, r)
	}

	return groupedFrame(selected), nil
}

func validateSite(table *entity.LaunchTable, site valueobject.SiteSelection) error {
	if !table.HasSite(site.String()) {
		return &InvalidInputError{Field: "site", Value: site.String()}
	}
	return nil
}

func recordsFrame(records []*entity.LaunchRecord) chart.Frame {
	frame := make(chart.Frame, 0, len(records))
	for _, r := range records {
		frame = append(frame, chart.Row{
			entity.ColumnLaunchSite:      r.LaunchSite(),
			entity.ColumnPayloadMass:     r.PayloadMass(),
			entity.ColumnBoosterCategory: r.BoosterCategory(),
			entity.ColumnClass:           r.Class().Int(),
		})
	}
	return frame
}

type scatterKey struct {
	site    string
	payload float64
	booster string
	class   int
}

// groupedFrame группирует по (site, payload, booster, class) с сортировкой ключей
func groupedFrame(records []*entity.LaunchRecord) chart.Frame {
	counts := make(map[scatterKey]int)
	keys := make([]scatterKey, 0)
	for _, r := range records {
		k := scatterKey{r.LaunchSite(), r.PayloadMass(), r.BoosterCategory(), r.Class().Int()}
		if _, ok := counts[k]; !ok {
			keys = append(keys, k)
		}
		counts[k]++
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.site != b.site {
			return a.site < b.site
		}
		if a.payload != b.payload {
			return a.payload < b.payload
		}
		if a.booster != b.booster {
			return a.booster < b.booster
		}
		return a.class < b.class
	})

	frame := make(chart.Frame, 0, len(keys))
	for _, k := range keys {
		frame = append(frame, chart.Row{
			entity.ColumnLaunchSite:      k.site,
			entity.ColumnPayloadMass:     k.payload,
			entity.ColumnBoosterCategory: k.booster,
			entity.ColumnClass:           k.class,
			ColumnClassCount:             counts[k],
		})
	}
	return frame
}
