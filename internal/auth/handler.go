package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"school-service/internal/credential"
	"school-service/internal/httputil"
	"school-service/internal/tenant"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginRequest struct {
	SchoolCode string `json:"school_code" validate:"required"`
	UserID     string `json:"user_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	tokens      *TokenManager
	tenants     tenant.Repository
	credentials credential.Repository
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewHandler(tokens *TokenManager, tenants tenant.Repository, credentials credential.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		tokens:      tokens,
		tenants:     tenants,
		credentials: credentials,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/login", h.Login)
}

// Login verifies a natural ID + password against the credentials table and
// issues an access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "school_code, user_id and password are required")
		return
	}

	t, err := h.tenants.GetByCode(r.Context(), req.SchoolCode)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			httputil.RespondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load school", "school", req.SchoolCode, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	cred, err := h.credentials.GetByUserID(r.Context(), t.Code, req.UserID)
	if err != nil {
		if errors.Is(err, credential.ErrCredentialNotFound) {
			httputil.RespondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load credential", "school", t.Code, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(r.Context(), "failed login attempt", "school", t.Code, "user_id", req.UserID)
		httputil.RespondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}

	token, err := h.tokens.Generate(t.Code, cred.UserID, cred.Kind)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token generation failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "school", t.Code, "user_id", cred.UserID)

	httputil.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
}
