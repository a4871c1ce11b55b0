package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/logx"
)

type authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

type userCtxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user stored by Authenticator.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*domain.User)
	return u, ok && u != nil
}

// Authenticator requires "Authorization: Bearer <token>" and stores the resolved user in the request context.
func Authenticator(a authorizer, logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			u, err := a.Authorize(r.Context(), raw)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
			case errors.Is(err, apperr.ErrExpired):
				unauthorized(w, "token expired")
			case errors.Is(err, apperr.ErrInvalidToken):
				unauthorized(w, "invalid token")
			case errors.Is(err, apperr.ErrUserNotFound):
				unauthorized(w, "user not found")
			case errors.Is(err, apperr.ErrUserInactive):
				writeJSONError(w, http.StatusForbidden, "user inactive")
			default:
				logger.Error("authorize failed", logx.String("path", r.URL.Path), logx.Err(err))
				writeJSONError(w, http.StatusInternalServerError, "internal error")
			}
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="paquexpress"`)
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
