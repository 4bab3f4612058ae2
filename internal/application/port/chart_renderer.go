package port

import (
	"context"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
)

// ChartRenderer превращает chart.Spec в изображение (Port)
// Реализация в Infrastructure слое (go-chart)
type ChartRenderer interface {
	// RenderSVG возвращает SVG документ графика. Пустой Spec рендерится как заглушка "No data"
	RenderSVG(ctx context.Context, spec chart.Spec) ([]byte, error)
}
