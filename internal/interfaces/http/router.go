package http

import (
	"io/fs"
	"net/http"
	"sync/atomic"

	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/handler"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/middleware"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// Instrumentation - метрики HTTP слоя (prometheus). Может быть nil
type Instrumentation interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}

// Router настраивает маршруты приложения
type Router struct {
	mux              *http.ServeMux
	dashboardHandler *handler.DashboardHandler
	chartAPIHandler  *handler.ChartAPIHandler
	websocketHandler *handler.WebSocketHandler
	limiter          *middleware.IPRateLimiter
	metrics          Instrumentation
	metricsPath      string
	ready            atomic.Bool
	logger           *logger.Logger
}

// NewRouter создает новый router
func NewRouter(
	dashboardHandler *handler.DashboardHandler,
	chartAPIHandler *handler.ChartAPIHandler,
	websocketHandler *handler.WebSocketHandler,
	limiter *middleware.IPRateLimiter,
	metrics Instrumentation,
	metricsPath string,
	logger *logger.Logger,
) *Router {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Router{
		mux:              http.NewServeMux(),
		dashboardHandler: dashboardHandler,
		chartAPIHandler:  chartAPIHandler,
		websocketHandler: websocketHandler,
		limiter:          limiter,
		metrics:          metrics,
		metricsPath:      metricsPath,
		logger:           logger,
	}
}

// SetReady переключает ответ /readyz
func (rt *Router) SetReady(ready bool) {
	rt.ready.Store(ready)
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	// Static assets are embedded into the binary.
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("failed to initialize embedded static assets: " + err.Error())
	}
	rt.mux.Handle("/static/", middleware.Compression(http.StripPrefix("/static/", http.FileServerFS(staticFS))))

	rt.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rt.mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !rt.ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if rt.metrics != nil {
		rt.mux.Handle(rt.metricsPath, rt.metrics.Handler())
	}

	limited := func(h http.HandlerFunc) http.Handler {
		var next http.Handler = middleware.Compression(h)
		if rt.limiter != nil {
			next = middleware.RateLimit(rt.limiter)(next)
		}
		return next
	}

	// Dashboard
	rt.mux.Handle("/", middleware.Compression(http.HandlerFunc(rt.dashboardHandler.ShowDashboard)))

	// WebSocket
	rt.mux.HandleFunc("/ws", rt.websocketHandler.HandleConnection)

	// API endpoints
	rt.mux.Handle("/api/v1/layout", limited(rt.dashboardHandler.GetLayout))
	rt.mux.Handle("/api/v1/options", limited(rt.chartAPIHandler.GetOptions))
	rt.mux.Handle("/api/v1/charts/pie", limited(rt.chartAPIHandler.GetPie))
	rt.mux.Handle("/api/v1/charts/scatter", limited(rt.chartAPIHandler.GetScatter))
	rt.mux.Handle("/api/v1/update", limited(rt.chartAPIHandler.PostUpdate))
	rt.mux.Handle("/charts/pie.svg", limited(rt.chartAPIHandler.GetPieSVG))
	rt.mux.Handle("/charts/scatter.svg", limited(rt.chartAPIHandler.GetScatterSVG))

	// Применяем middleware
	var handler http.Handler = rt.mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = middleware.Logger(rt.logger)(handler)
	handler = middleware.Recovery(rt.logger)(handler)

	return handler
}
