package students

import (
	"errors"
	"log/slog"
	"net/http"

	"academixstore-admin/internal/api"
	"academixstore-admin/internal/httputil"
	"academixstore-admin/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RegisterStudentRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone"`
	CollegeID string `json:"collegeId" validate:"required"`
}

func (r RegisterStudentRequest) payload() map[string]any {
	data := map[string]any{
		"fullName":  r.FullName,
		"email":     r.Email,
		"password":  r.Password,
		"collegeId": r.CollegeID,
	}
	if r.Phone != "" {
		data["phone"] = r.Phone
	}
	return data
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

type FiltersRequest struct {
	Search    string `json:"search"`
	CollegeID string `json:"collegeId"`
}

type Handler struct {
	controller *Controller
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewHandler(controller *Controller, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/students", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Post("/", h.Register)
		r.Post("/refresh", h.Refresh)
		r.Post("/load-more", h.LoadMore)
		r.Get("/books", h.GetBooks)
		r.Put("/filters", h.ApplyFilters)
		r.Get("/{id}", h.GetStudent)
		r.Put("/{id}", h.Update)
		r.Post("/{id}/activate", h.Activate)
		r.Post("/{id}/deactivate", h.Deactivate)
		r.Post("/{id}/password", h.ChangePassword)
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.controller.LoadStudents(r.Context(), true)
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	h.controller.LoadMore(r.Context())
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"books": h.controller.GetStudentBooks(r.Context()),
	})
}

func (h *Handler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	h.controller.ApplyFilters(r.Context(), models.StudentFilters{
		Search:    models.StringPtr(req.Search),
		CollegeID: models.StringPtr(req.CollegeID),
	})
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	student, ok := h.controller.GetStudent(r.Context(), id)
	if !ok {
		httputil.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterStudentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.logger.InfoContext(r.Context(), "invalid registration request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.controller.register(r.Context(), req.payload()); err != nil {
		h.respondMutationFailure(w, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusCreated, h.controller.State())
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var data map[string]any
	if err := httputil.DecodeJSON(r, &data); err != nil || len(data) == 0 {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.controller.update(r.Context(), id, data); err != nil {
		h.respondMutationFailure(w, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.setActive(r.Context(), chi.URLParam(r, "id"), true); err != nil {
		h.respondMutationFailure(w, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.setActive(r.Context(), chi.URLParam(r, "id"), false); err != nil {
		h.respondMutationFailure(w, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.controller.changePassword(r.Context(), chi.URLParam(r, "id"), req.CurrentPassword, req.NewPassword); err != nil {
		h.respondMutationFailure(w, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "password changed successfully",
	})
}

// respondMutationFailure maps the error of this request's own call, never the
// shared controller state, which a concurrent request may have overwritten.
func (h *Handler) respondMutationFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAccessDenied) {
		httputil.RespondWithError(w, http.StatusForbidden, msgAccessDenied)
		return
	}
	var failure *MutationError
	if errors.As(err, &failure) {
		httputil.RespondWithError(w, http.StatusUnprocessableEntity, failure.Message)
		return
	}
	httputil.RespondWithError(w, http.StatusInternalServerError, api.MsgUnexpectedError)
}
