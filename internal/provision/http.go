package provision

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"school-service/internal/httputil"
	"school-service/internal/tenant"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	controller *Controller
	tenants    tenant.Repository
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewHandler(controller *Controller, tenants tenant.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		tenants:    tenants,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/schools/{code}/{kind}/import", h.Import)
	router.Post("/schools/{code}/{kind}/credentials/fill", h.FillMissing)
	router.Post("/schools/{code}/{kind}/{id}/credentials/regenerate", h.Regenerate)
}

type ImportRequest struct {
	Rows   []ImportRow `json:"rows" validate:"required,min=1"`
	Reveal bool        `json:"reveal"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	t, kind, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "rows are required")
		return
	}

	h.logger.InfoContext(r.Context(), "import requested", "school", t.Code, "kind", kind, "rows", len(req.Rows))

	res, err := h.controller.RunImport(r.Context(), t, kind, req.Rows, req.Reveal)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "import failed", "school", t.Code, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "import failed")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *Handler) FillMissing(w http.ResponseWriter, r *http.Request) {
	t, kind, ok := h.resolve(w, r)
	if !ok {
		return
	}

	reveal := r.URL.Query().Get("reveal") == "true"

	res, err := h.controller.FillMissingCredentials(r.Context(), t, kind, reveal)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "fill-missing-credentials failed", "school", t.Code, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "fill-missing-credentials failed")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	t, kind, ok := h.resolve(w, r)
	if !ok {
		return
	}
	naturalID := chi.URLParam(r, "id")

	cred, err := h.controller.RegenerateCredential(r.Context(), t, kind, naturalID)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			httputil.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "credential regeneration failed",
			"school", t.Code, "user_id", naturalID, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "credential regeneration failed")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, cred)
}

// resolve loads the tenant and entity kind from the URL. An unknown school
// or kind aborts the request before anything is written.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*tenant.Tenant, Kind, bool) {
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, "", false
	}

	code := chi.URLParam(r, "code")
	t, err := h.tenants.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			httputil.RespondWithError(w, http.StatusNotFound, "school not found")
			return nil, "", false
		}
		h.logger.ErrorContext(r.Context(), "failed to load school", "school", code, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return nil, "", false
	}

	return t, kind, true
}
