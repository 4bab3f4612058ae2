package view

import (
	"strconv"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
)

// Параметры слайдера фиксированы и не зависят от данных
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 100
)

// Layout описывает страницу: заголовок, dropdown, два графика и слайдер
type Layout struct {
	Heading      Heading  `json:"heading"`
	Dropdown     Dropdown `json:"dropdown"`
	PieGraph     Graph    `json:"pie_graph"`
	RangeLabel   string   `json:"range_label"`
	Slider       Slider   `json:"slider"`
	ScatterGraph Graph    `json:"scatter_graph"`
}

type Heading struct {
	Text  string            `json:"text"`
	Style map[string]string `json:"style"`
}

type Dropdown struct {
	ID          string              `json:"id"`
	Options     []dto.SiteOptionDTO `json:"options"`
	Value       string              `json:"value"`
	Placeholder string              `json:"placeholder"`
	Searchable  bool                `json:"searchable"`
}

type Graph struct {
	ID string `json:"id"`
}

type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type Slider struct {
	ID    string     `json:"id"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// DefaultLayout строит описание страницы для списка площадок и начального состояния
func DefaultLayout(options []dto.SiteOptionDTO, state dto.StateDTO) Layout {
	marks := make([]Mark, 0, 5)
	for v := SliderMin; v <= SliderMax; v += 2500 {
		marks = append(marks, Mark{Value: float64(v), Label: strconv.Itoa(v)})
	}

	return Layout{
		Heading: Heading{
			Text: "SpaceX Launch Records Dashboard",
			Style: map[string]string{
				"textAlign": "center",
				"color":     "#503D36",
				"fontSize":  "40",
			},
		},
		Dropdown: Dropdown{
			ID:          string(binding.SiteDropdown),
			Options:     options,
			Value:       state.Site,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		PieGraph:   Graph{ID: string(binding.PieChart)},
		RangeLabel: "Payload range (Kg):",
		Slider: Slider{
			ID:    string(binding.PayloadSlider),
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Marks: marks,
			Value: state.Range,
		},
		ScatterGraph: Graph{ID: string(binding.ScatterChart)},
	}
}
