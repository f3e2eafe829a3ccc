package health

import (
	"net/http"
	"sync/atomic"

	"academixstore-admin/internal/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ready atomic.Bool
}

func NewHandler() *Handler {
	return &Handler{}
}

// MarkReady flips /ready to 200 once the initial lists are loaded.
func (h *Handler) MarkReady() {
	h.ready.Store(true)
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		httputil.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "starting"})
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
