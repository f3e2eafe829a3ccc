package colleges

import (
	"log/slog"
	"net/http"

	"academixstore-admin/internal/httputil"
	"academixstore-admin/internal/models"

	"github.com/go-chi/chi/v5"
)

type FiltersRequest struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

type Handler struct {
	controller *Controller
	logger     *slog.Logger
}

func NewHandler(controller *Controller, logger *slog.Logger) *Handler {
	return &Handler{controller: controller, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/colleges", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Post("/refresh", h.Refresh)
		r.Post("/load-more", h.LoadMore)
		r.Put("/filters", h.ApplyFilters)
		r.Get("/{id}/stats", h.GetStats)
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.controller.LoadColleges(r.Context(), true)
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	h.controller.LoadMore(r.Context())
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	h.controller.ApplyFilters(r.Context(), models.CollegeFilters{
		Search: models.StringPtr(req.Search),
		Status: models.StringPtr(req.Status),
	})
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.controller.GetCollegeStats(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		httputil.RespondWithError(w, http.StatusNotFound, "College stats not available")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, stats)
}
