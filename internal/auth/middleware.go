package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"school-service/internal/httputil"
)

type contextKey string

const (
	// SchoolCodeKey is the context key for the authenticated tenant
	SchoolCodeKey contextKey = "school_code"
	// UserIDKey is the context key for the authenticated natural ID
	UserIDKey contextKey = "user_id"
)

// Middleware validates the bearer token and adds its claims to the request
// context.
func Middleware(tokens *TokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				logger.WarnContext(r.Context(), "missing bearer token", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "error", err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), SchoolCodeKey, claims.SchoolCode)
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSchoolCode extracts the authenticated tenant from context
func GetSchoolCode(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(SchoolCodeKey).(string)
	return code, ok
}

// GetUserID extracts the authenticated natural ID from context
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}
