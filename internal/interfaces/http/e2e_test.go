package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset/csvfile"
	wsInfra "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/notification/websocket"
	obsprom "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/observability/prometheus"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/render/gochart"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/handler"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/middleware"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

const (
	testOrigin = "http://localhost:8050"

	launchesCSV = "Flight Number,Launch Site,class,Payload Mass (kg),Booster Version Category\n" +
		"1,CCAFS LC-40,0,0,v1.0\n" +
		"2,CCAFS LC-40,0,525,v1.0\n" +
		"3,VAFB SLC-4E,0,500,v1.1\n" +
		"4,KSC LC-39A,1,2490,FT\n" +
		"5,CCAFS LC-40,1,3170,FT\n" +
		"6,KSC LC-39A,1,5300,FT\n" +
		"7,CCAFS SLC-40,0,4600,B4\n" +
		"8,VAFB SLC-4E,1,9600,FT\n"
)

func newTestServer(t *testing.T) (*httptest.Server, *Router) {
	t.Helper()

	table, err := csvfile.ParseLaunchTable(strings.NewReader(launchesCSV), "test")
	if err != nil {
		t.Fatalf("failed to parse launches: %v", err)
	}
	return newTestServerForTable(t, table)
}

func newTestServerForTable(t *testing.T, table *entity.LaunchTable) (*httptest.Server, *Router) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := logger.New("error")

	aggregator := service.NewLaunchAggregator(service.ScatterFilterLegacy)
	getPieChartUC := usecase.NewGetPieChartUseCase(table, aggregator, log)
	getScatterChartUC := usecase.NewGetScatterChartUseCase(table, aggregator, log)
	getSiteOptionsUC := usecase.NewGetSiteOptionsUseCase(table)

	rules, err := binding.NewDashboardTable(getPieChartUC, getScatterChartUC)
	if err != nil {
		t.Fatalf("failed to build rule table: %v", err)
	}

	hub := wsInfra.NewHub(log)
	go hub.Run(ctx)

	metrics := obsprom.New(prometheus.NewRegistry(), hub.ClientCount)
	rules.Observe(usecase.NewTrackInteractionUseCase(nil, log, metrics))

	renderer := gochart.NewRenderer(0, 0)
	initial := binding.InitialState(table)

	limiter := middleware.NewIPRateLimiter(ctx, 1000, 1000)
	limiter.OnDrop(metrics.RateLimitDropped.Inc)

	router := NewRouter(
		handler.NewDashboardHandler(
			usecase.NewGetDashboardUseCase(table, rules, getSiteOptionsUC, renderer, log),
			getSiteOptionsUC,
			log,
		),
		handler.NewChartAPIHandler(
			getPieChartUC,
			getScatterChartUC,
			getSiteOptionsUC,
			usecase.NewDispatchUpdateUseCase(rules, renderer, log),
			renderer,
			initial,
			log,
		),
		handler.NewWebSocketHandler(hub, rules, initial, renderer, []string{testOrigin}, log),
		limiter,
		metrics,
		"/metrics",
		log,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server, router
}

func TestE2EHealthEndpoints(t *testing.T) {
	server, router := newTestServer(t)
	client := server.Client()

	resp := doRequest(t, client, http.MethodGet, server.URL+"/healthz", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", resp.StatusCode)
	}

	resp = doRequest(t, client, http.MethodGet, server.URL+"/readyz", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before ready, got %d", resp.StatusCode)
	}

	router.SetReady(true)
	resp = doRequest(t, client, http.MethodGet, server.URL+"/readyz", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after ready, got %d", resp.StatusCode)
	}
}

func TestE2EDashboardPage(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, server.Client(), http.MethodGet, server.URL+"/", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for dashboard, got %d", resp.StatusCode)
	}
	for _, want := range []string{"SpaceX Launch Records Dashboard", `id="site-dropdown"`, `id="success-pie-chart"><svg`, "/static/js/dashboard.js"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard page lacks %q", want)
		}
	}

	resp = doRequest(t, server.Client(), http.MethodGet, server.URL+"/favicon.ico", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", resp.StatusCode)
	}
}

func TestE2EOptionsAndLayout(t *testing.T) {
	server, _ := newTestServer(t)

	var options []dto.SiteOptionDTO
	decodeJSON(t, doRequest(t, server.Client(), http.MethodGet, server.URL+"/api/v1/options", nil), &options)

	want := []string{"ALL", "CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	if len(options) != len(want) {
		t.Fatalf("unexpected options: %+v", options)
	}
	for i := range want {
		if options[i].Value != want[i] {
			t.Fatalf("option %d: want %q, got %q", i, want[i], options[i].Value)
		}
	}

	var layout map[string]json.RawMessage
	decodeJSON(t, doRequest(t, server.Client(), http.MethodGet, server.URL+"/api/v1/layout", nil), &layout)
	if !strings.Contains(string(layout["slider"]), `"value":[0,9600]`) {
		t.Fatalf("expected slider default to observed payload range, got %s", layout["slider"])
	}
}

func TestE2EChartEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	var pie dto.FigureDTO
	decodeJSON(t, doRequest(t, client, http.MethodGet, server.URL+"/api/v1/charts/pie", nil), &pie)
	if pie.Type != "pie" || pie.Title != "Total Success Launches By Site" || len(pie.Slices) != 4 {
		t.Fatalf("unexpected ALL pie: %+v", pie)
	}
	rows := 0
	for _, s := range pie.Slices {
		rows += s.Rows
	}
	if rows != 8 {
		t.Fatalf("expected slice rows to sum to 8, got %d", rows)
	}

	var unknown dto.FigureDTO
	decodeJSON(t, doRequest(t, client, http.MethodGet, server.URL+"/api/v1/charts/pie?site=Boca+Chica", nil), &unknown)
	if !unknown.Empty {
		t.Fatalf("expected empty chart for unknown site, got %+v", unknown)
	}

	var scatter dto.FigureDTO
	decodeJSON(t, doRequest(t, client, http.MethodGet, server.URL+"/api/v1/charts/scatter?low=1000&high=5000", nil), &scatter)
	points := 0
	for _, s := range scatter.Series {
		points += len(s.X)
	}
	if points != 3 {
		t.Fatalf("expected 3 points strictly inside (1000, 5000), got %d", points)
	}

	resp := doRequest(t, client, http.MethodGet, server.URL+"/api/v1/charts/scatter?low=heavy", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed low, got %d", resp.StatusCode)
	}

	var inverted dto.FigureDTO
	decodeJSON(t, doRequest(t, client, http.MethodGet, server.URL+"/api/v1/charts/scatter?low=5000&high=1000", nil), &inverted)
	if !inverted.Empty {
		t.Fatalf("expected empty chart for inverted range, got %+v", inverted)
	}

	resp = doRequest(t, client, http.MethodGet, server.URL+"/charts/scatter.svg?site=KSC+LC-39A", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("unexpected svg response: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "<svg") {
		t.Fatalf("expected svg body")
	}
}

func TestE2EStatelessUpdate(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	post := func(payload string) *http.Response {
		return doRequest(t, client, http.MethodPost, server.URL+"/api/v1/update", bytes.NewBufferString(payload))
	}

	var slider dto.UpdateResponseDTO
	decodeJSON(t, post(`{"trigger":"payload-slider","state":{"site":"ALL","range":[1000,5000]}}`), &slider)
	if len(slider.Updates) != 1 || slider.Updates[0].Target != "success-payload-scatter-chart" {
		t.Fatalf("slider must update only the scatter chart, got %+v", slider.Updates)
	}
	if !strings.Contains(slider.Updates[0].SVG, "<svg") {
		t.Fatalf("expected rendered svg in update")
	}

	var site dto.UpdateResponseDTO
	decodeJSON(t, post(`{"trigger":"site-dropdown","state":{"site":"KSC LC-39A","range":[0,9600]}}`), &site)
	if len(site.Updates) != 2 {
		t.Fatalf("dropdown must update both charts, got %d", len(site.Updates))
	}
	if site.Updates[0].Figure.Title != "Total Success Launches for Site KSC LC-39A" {
		t.Fatalf("unexpected pie title: %q", site.Updates[0].Figure.Title)
	}

	resp := post(`{"trigger":"launch-button","state":{"site":"ALL","range":[0,1]}}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown trigger, got %d", resp.StatusCode)
	}

	resp = post(`{"trigger":`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.StatusCode)
	}

	resp = doRequest(t, client, http.MethodGet, server.URL+"/api/v1/update", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET update, got %d", resp.StatusCode)
	}
}

func TestE2EWebSocketSession(t *testing.T) {
	server, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{"http://evil.example"}}); err == nil {
		t.Fatalf("expected foreign origin to be rejected")
	} else if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign origin, got %d", resp.StatusCode)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{testOrigin}})
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type wsUpdate struct {
		Type    string        `json:"type"`
		EventID string        `json:"event_id"`
		Data    dto.UpdateDTO `json:"data"`
	}
	read := func() wsUpdate {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg wsUpdate
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read error: %v", err)
		}
		return msg
	}

	for _, target := range []string{"success-pie-chart", "success-payload-scatter-chart"} {
		msg := read()
		if msg.Type != "update" || msg.Data.Target != target {
			t.Fatalf("expected initial update for %s, got %+v", target, msg)
		}
	}

	if err := conn.WriteJSON(map[string]interface{}{"type": "event", "id": "e1", "source": "site-dropdown", "site": "VAFB SLC-4E"}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	pie := read()
	scatter := read()
	if pie.EventID != "e1" || pie.Data.Figure.Title != "Total Success Launches for Site VAFB SLC-4E" {
		t.Fatalf("unexpected pie update: %+v", pie.Data.Figure)
	}
	if scatter.Data.Target != "success-payload-scatter-chart" || scatter.Data.Figure.Title != "Correlation between Payload and Success for VAFB SLC-4E" {
		t.Fatalf("unexpected scatter update: %+v", scatter.Data.Figure)
	}
}

func TestE2EMetricsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	resp := doRequest(t, client, http.MethodPost, server.URL+"/api/v1/update",
		bytes.NewBufferString(`{"trigger":"payload-slider","state":{"site":"ALL","range":[0,9600]}}`))
	resp.Body.Close()

	body := readBody(t, doRequest(t, client, http.MethodGet, server.URL+"/metrics", nil))
	for _, want := range []string{
		`dashboard_http_requests_total{method="POST",route="/api/v1/*",status="200"} 1`,
		`dashboard_callbacks_total{outcome="ok",rule="scatter",trigger="payload-slider"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output lacks %q:\n%s", want, body)
		}
	}
}

func doRequest(t *testing.T, client *http.Client, method, url string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var reader io.Reader = bytes.NewReader(nil)
	if body != nil {
		reader = bytes.NewReader(body.Bytes())
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
