package handler

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// parseSite: отсутствующий site означает ALL
func parseSite(q url.Values) valueobject.SiteSelection {
	return valueobject.NewSiteSelection(q.Get("site"))
}

// parseRange читает low/high; отсутствующие границы берутся из defaults.
// Порядок границ не проверяется, это делает use case
func parseRange(q url.Values, defaultLow, defaultHigh float64) (float64, float64, error) {
	low, err := parseBound(q, "low", defaultLow)
	if err != nil {
		return 0, 0, err
	}
	high, err := parseBound(q, "high", defaultHigh)
	if err != nil {
		return 0, 0, err
	}
	return low, high, nil
}

func parseBound(q url.Values, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return value, nil
}
