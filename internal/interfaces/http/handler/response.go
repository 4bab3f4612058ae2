package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode JSON response", err)
	}
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}
