package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/chart"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

const maxUpdateBodyBytes = 64 * 1024

// ChartAPIHandler обрабатывает API запросы для графиков и stateless обновлений
type ChartAPIHandler struct {
	getPieChartUC     *usecase.GetPieChartUseCase
	getScatterChartUC *usecase.GetScatterChartUseCase
	getSiteOptionsUC  *usecase.GetSiteOptionsUseCase
	dispatchUpdateUC  *usecase.DispatchUpdateUseCase
	renderer          port.ChartRenderer
	defaults          binding.State
	logger            *logger.Logger
}

// NewChartAPIHandler создает новый handler. defaults задает диапазон,
// если low/high не переданы
func NewChartAPIHandler(
	getPieChartUC *usecase.GetPieChartUseCase,
	getScatterChartUC *usecase.GetScatterChartUseCase,
	getSiteOptionsUC *usecase.GetSiteOptionsUseCase,
	dispatchUpdateUC *usecase.DispatchUpdateUseCase,
	renderer port.ChartRenderer,
	defaults binding.State,
	logger *logger.Logger,
) *ChartAPIHandler {
	return &ChartAPIHandler{
		getPieChartUC:     getPieChartUC,
		getScatterChartUC: getScatterChartUC,
		getSiteOptionsUC:  getSiteOptionsUC,
		dispatchUpdateUC:  dispatchUpdateUC,
		renderer:          renderer,
		defaults:          defaults,
		logger:            logger,
	}
}

// GetOptions возвращает пункты dropdown
func (h *ChartAPIHandler) GetOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.getSiteOptionsUC.Execute(), h.logger)
}

// GetPie возвращает pie график в JSON
func (h *ChartAPIHandler) GetPie(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.pieSpec(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.FromSpec(spec), h.logger)
}

// GetScatter возвращает scatter график в JSON
func (h *ChartAPIHandler) GetScatter(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.scatterSpec(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.FromSpec(spec), h.logger)
}

// GetPieSVG возвращает pie график в SVG
func (h *ChartAPIHandler) GetPieSVG(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.pieSpec(w, r)
	if !ok {
		return
	}
	h.renderSVG(w, r, spec)
}

// GetScatterSVG возвращает scatter график в SVG
func (h *ChartAPIHandler) GetScatterSVG(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.scatterSpec(w, r)
	if !ok {
		return
	}
	h.renderSVG(w, r, spec)
}

// PostUpdate выполняет правила для одного изменения элемента управления
func (h *ChartAPIHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request dto.UpdateRequestDTO
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		http.Error(w, "Invalid update request", http.StatusBadRequest)
		return
	}

	response, err := h.dispatchUpdateUC.Execute(r.Context(), request)
	if err != nil {
		if errors.Is(err, binding.ErrUnknownTrigger) {
			http.Error(w, "Unknown trigger", http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to dispatch update", err, "trigger", request.Trigger)
		http.Error(w, "Failed to dispatch update", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response, h.logger)
}

func (h *ChartAPIHandler) pieSpec(w http.ResponseWriter, r *http.Request) (chart.Spec, bool) {
	spec, err := h.getPieChartUC.Execute(r.Context(), parseSite(r.URL.Query()))
	if err != nil {
		h.logger.Error("Failed to build pie chart", err)
		http.Error(w, "Failed to build chart", http.StatusInternalServerError)
		return chart.Spec{}, false
	}
	return spec, true
}

func (h *ChartAPIHandler) scatterSpec(w http.ResponseWriter, r *http.Request) (chart.Spec, bool) {
	q := r.URL.Query()
	low, high, err := parseRange(q, h.defaults.Low, h.defaults.High)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return chart.Spec{}, false
	}

	spec, err := h.getScatterChartUC.Execute(r.Context(), parseSite(q), low, high)
	if err != nil {
		h.logger.Error("Failed to build scatter chart", err)
		http.Error(w, "Failed to build chart", http.StatusInternalServerError)
		return chart.Spec{}, false
	}
	return spec, true
}

func (h *ChartAPIHandler) renderSVG(w http.ResponseWriter, r *http.Request, spec chart.Spec) {
	svg, err := h.renderer.RenderSVG(r.Context(), spec)
	if err != nil {
		h.logger.Error("Failed to render chart", err, "kind", string(spec.Kind))
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	writeSVG(w, svg)
}
