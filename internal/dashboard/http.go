package dashboard

import (
	"log/slog"
	"net/http"

	"academixstore-admin/internal/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	controller *Controller
	logger     *slog.Logger
}

func NewHandler(controller *Controller, logger *slog.Logger) *Handler {
	return &Handler{controller: controller, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Post("/refresh", h.Refresh)
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.controller.LoadDashboard(r.Context())

	state := h.controller.State()
	if state.Error != "" && state.Stats == nil {
		h.logger.WarnContext(r.Context(), "dashboard unavailable", "error", state.Error)
		httputil.RespondWithJSON(w, http.StatusBadGateway, state)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, state)
}
