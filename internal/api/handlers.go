// Package api exposes the twin over HTTP: telemetry ingestion, state
// snapshots, preference updates, and recent-telemetry queries.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"horizon/internal/history"
	"horizon/internal/metrics"
	"horizon/internal/model"
	"horizon/internal/twin"
	"horizon/internal/ws"
)

// Handler holds the twin and its collaborators. The twin instance is
// threaded through explicitly; there is no package-level state.
type Handler struct {
	twin   *twin.Twin
	hist   *history.History
	bridge *ws.Bridge
}

func NewHandler(t *twin.Twin, hist *history.History, bridge *ws.Bridge) *Handler {
	return &Handler{twin: t, hist: hist, bridge: bridge}
}

// TelemetryIn is the ingest request body. Timestamp is optional and
// RFC3339 when present.
type TelemetryIn struct {
	DeviceID  int      `json:"device_id"`
	PowerKW   float64  `json:"power_kw"`
	TempC     *float64 `json:"temp_c,omitempty"`
	Status    string   `json:"status,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

func (h *Handler) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if h.twin == nil {
		writeError(w, http.StatusServiceUnavailable, twin.ErrNotInitialized.Error())
		return
	}

	var in TelemetryIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid telemetry payload")
		return
	}

	ts := time.Now().UTC()
	if in.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, in.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid timestamp")
			return
		}
		ts = parsed
	}

	sample := model.Telemetry{
		DeviceID:  in.DeviceID,
		PowerKW:   in.PowerKW,
		TempC:     in.TempC,
		Status:    in.Status,
		Timestamp: ts,
	}

	res := h.twin.Ingest(sample)
	if res.Unknown() {
		metrics.UnknownDeviceTotal.Inc()
		writeJSON(w, http.StatusNotFound, res)
		return
	}

	metrics.IngestTotal.WithLabelValues(string(res.Type)).Inc()
	h.hist.Add(sample)

	if h.bridge != nil {
		h.bridge.OnTelemetry(sample, res)
		h.bridge.OnSnapshot(h.twin.Snapshot())
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if h.twin == nil {
		writeError(w, http.StatusServiceUnavailable, twin.ErrNotInitialized.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.twin.Snapshot())
}

func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if h.twin == nil {
		writeError(w, http.StatusServiceUnavailable, twin.ErrNotInitialized.Error())
		return
	}

	var prefs model.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preferences payload")
		return
	}
	if prefs.ComfortMinC >= prefs.ComfortMaxC {
		writeError(w, http.StatusBadRequest, "comfort_min_c must be below comfort_max_c")
		return
	}

	h.twin.UpdatePreferences(prefs)
	writeJSON(w, http.StatusOK, h.twin.Preferences())
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	deviceID, err := strconv.Atoi(r.URL.Query().Get("device_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	writeJSON(w, http.StatusOK, h.hist.Recent(deviceID, limit))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "horizon-backend"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
