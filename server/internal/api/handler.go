package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/inkrelay/inkrelay/server/internal/store"
	"github.com/inkrelay/inkrelay/server/internal/ws"
)

// Hub is the read-only view of the sync hub the API reports on.
type Hub interface {
	Count() int
	Stats() ws.Stats
}

// Handler is the HTTP handler for /api/v1/* and /metrics.
type Handler struct {
	log *store.StrokeLog
	hub Hub
	mux *http.ServeMux
}

// New creates a Handler wired to the stroke log and hub and registers all routes.
func New(log *store.StrokeLog, hub Hub) http.Handler {
	h := &Handler{log: log, hub: hub, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/strokes", h.strokes)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		State:   "ok",
		Clients: h.hub.Count(),
		Strokes: h.log.Len(),
	})
}

// strokes returns GET /api/v1/strokes — the full stroke history in order.
func (h *Handler) strokes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap := h.log.Snapshot()
	jsonResp(w, http.StatusOK, StrokesResponse{
		Strokes:     snap,
		Count:       len(snap),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
