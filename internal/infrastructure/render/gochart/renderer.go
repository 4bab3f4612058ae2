package gochart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	wchart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 640
	defaultHeight = 420

	noDataText = "No data"
)

// palette совпадает с цветами по умолчанию в браузерной версии графиков
var palette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

// Renderer рендерит chart.Spec в SVG через go-chart
type Renderer struct {
	width  int
	height int
}

var _ port.ChartRenderer = (*Renderer)(nil)

// NewRenderer создает renderer. Нулевые размеры заменяются значениями по умолчанию
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Renderer{width: width, height: height}
}

// RenderSVG рисует pie или scatter спецификацию в SVG
func (r *Renderer) RenderSVG(ctx context.Context, spec chart.Spec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error

	switch {
	case spec.Empty:
		err = r.renderPlaceholder(spec.Title, &buf)
	case spec.Kind == chart.KindPie:
		if spec.Total() <= 0 {
			err = r.renderPlaceholder(spec.Title, &buf)
			break
		}
		err = r.renderPie(spec, &buf)
	case spec.Kind == chart.KindScatter:
		if spec.PointCount() == 0 {
			err = r.renderPlaceholder(spec.Title, &buf)
			break
		}
		err = r.renderScatter(spec, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart kind: %q", spec.Kind)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) renderPie(spec chart.Spec, w io.Writer) error {
	values := make([]wchart.Value, 0, len(spec.Slices))
	for i, slice := range spec.Slices {
		if slice.Value <= 0 {
			continue
		}
		values = append(values, wchart.Value{
			Label: fmt.Sprintf("%s (%s)", slice.Label, formatNumber(slice.Value)),
			Value: slice.Value,
			Style: wchart.Style{FillColor: color(i)},
		})
	}

	pie := wchart.PieChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	return pie.Render(wchart.SVG, w)
}

func (r *Renderer) renderScatter(spec chart.Spec, w io.Writer) error {
	series := make([]wchart.Series, 0, len(spec.Series))
	minX, maxX := math.Inf(1), math.Inf(-1)

	for i, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}

		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}

		series = append(series, wchart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(color(i)),
		})
	}

	minX, maxX = paddedRange(minX, maxX)

	graph := wchart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: wchart.Style{Padding: wchart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: wchart.XAxis{
			Name:  spec.Encoding.X,
			Range: &wchart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: wchart.YAxis{
			Name:  spec.Encoding.Y,
			Range: &wchart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []wchart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	graph.Elements = []wchart.Renderable{wchart.Legend(&graph)}

	return graph.Render(wchart.SVG, w)
}

// renderPlaceholder рисует заглушку "No data" тем же SVG рендерером
func (r *Renderer) renderPlaceholder(title string, w io.Writer) error {
	rend, err := wchart.SVG(r.width, r.height)
	if err != nil {
		return err
	}

	font, err := wchart.GetDefaultFont()
	if err != nil {
		return err
	}
	rend.SetFont(font)

	if title != "" {
		rend.SetFontSize(14)
		rend.SetFontColor(drawing.ColorFromHex("444444"))
		box := rend.MeasureText(title)
		rend.Text(title, max(0, (r.width-box.Width())/2), 30)
	}

	rend.SetFontSize(18)
	rend.SetFontColor(drawing.ColorFromHex("999999"))
	box := rend.MeasureText(noDataText)
	rend.Text(noDataText, (r.width-box.Width())/2, r.height/2)

	return rend.Save(w)
}

// pointStyle рисует только точки, без соединительной линии
func pointStyle(col drawing.Color) wchart.Style {
	return wchart.Style{
		StrokeWidth: wchart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func color(i int) drawing.Color {
	return drawing.ColorFromHex(palette[i%len(palette)])
}

// paddedRange расширяет диапазон оси X, go-chart не рисует нулевой диапазон
func paddedRange(minX, maxX float64) (float64, float64) {
	span := maxX - minX
	if span <= 0 {
		pad := math.Max(math.Abs(minX)*0.1, 100)
		return minX - pad, maxX + pad
	}
	pad := span * 0.05
	return minX - pad, maxX + pad
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
