package staff

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
	router.Get("/schools/{code}/staff", h.GetAll)
	router.Get("/schools/{code}/staff/{id}", h.Get)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	members, err := h.service.GetAll(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, members)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	staffID := chi.URLParam(r, "id")

	member, err := h.service.GetByStaffID(r.Context(), code, staffID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, member)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStaffNotFound) {
		httputil.RespondWithError(w, http.StatusNotFound, "staff member not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "staff query failed", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
