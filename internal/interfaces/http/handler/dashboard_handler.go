package handler

import (
	"net/http"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/view"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// DashboardHandler обрабатывает запросы к dashboard
type DashboardHandler struct {
	getDashboardUC   *usecase.GetDashboardUseCase
	getSiteOptionsUC *usecase.GetSiteOptionsUseCase
	logger           *logger.Logger
}

// NewDashboardHandler создает новый handler
func NewDashboardHandler(
	getDashboardUC *usecase.GetDashboardUseCase,
	getSiteOptionsUC *usecase.GetSiteOptionsUseCase,
	logger *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		getDashboardUC:   getDashboardUC,
		getSiteOptionsUC: getSiteOptionsUC,
		logger:           logger,
	}
}

// ShowDashboard отображает главную страницу dashboard
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	// Начальные графики для site=ALL и полного диапазона
	page := h.getDashboardUC.Execute(r.Context())
	layout := view.DefaultLayout(page.Options, page.State)

	// Рендерим Templ template
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Dashboard(page, layout).Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render dashboard", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
}

// GetLayout возвращает описание страницы в JSON
func (h *DashboardHandler) GetLayout(w http.ResponseWriter, _ *http.Request) {
	state := dto.FromState(h.getDashboardUC.InitialState())
	writeJSON(w, http.StatusOK, view.DefaultLayout(h.getSiteOptionsUC.Execute(), state), h.logger)
}
