package student

import (
	"errors"
	"log/slog"
	"net/http"

	"school-service/internal/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/schools/{code}/students", h.GetAll)
	router.Get("/schools/{code}/students/{id}", h.Get)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	students, err := h.service.GetAll(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	admissionNo := chi.URLParam(r, "id")

	student, err := h.service.GetByAdmissionNo(r.Context(), code, admissionNo)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStudentNotFound) {
		httputil.RespondWithError(w, http.StatusNotFound, "student not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "student query failed", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
