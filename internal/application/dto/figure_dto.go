package dto

import (
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
)

// EncodingDTO - соответствие каналов графика колонкам
type EncodingDTO struct {
	Values string `json:"values,omitempty"`
	Names  string `json:"names,omitempty"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
}

// SliceDTO - сектор pie графика
type SliceDTO struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Rows  int     `json:"rows"`
}

// SeriesDTO - серия точек scatter графика
type SeriesDTO struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// FigureDTO представляет ChartSpec для передачи клиенту
type FigureDTO struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Encoding EncodingDTO `json:"encoding"`
	Slices   []SliceDTO  `json:"slices,omitempty"`
	Series   []SeriesDTO `json:"series,omitempty"`
	Empty    bool        `json:"empty"`
}

// FromSpec конвертирует chart.Spec в DTO
func FromSpec(spec chart.Spec) *FigureDTO {
	figure := &FigureDTO{
		Type:  string(spec.Kind),
		Title: spec.Title,
		Encoding: EncodingDTO{
			Values: spec.Encoding.Values,
			Names:  spec.Encoding.Names,
			X:      spec.Encoding.X,
			Y:      spec.Encoding.Y,
			Color:  spec.Encoding.Color,
		},
		Empty: spec.Empty,
	}

	for _, s := range spec.Slices {
		figure.Slices = append(figure.Slices, SliceDTO{Label: s.Label, Value: s.Value, Rows: s.Rows})
	}

	for _, s := range spec.Series {
		series := SeriesDTO{
			Name: s.Name,
			X:    make([]float64, len(s.Points)),
			Y:    make([]float64, len(s.Points)),
		}
		for i, p := range s.Points {
			series.X[i] = p.X
			series.Y[i] = p.Y
		}
		figure.Series = append(figure.Series, series)
	}

	return figure
}
