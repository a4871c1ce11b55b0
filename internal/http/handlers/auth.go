package handlers

import (
	"errors"
	"net/http"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/logx"
)

// AuthHandler serves login and the password hashing utility.
type AuthHandler struct {
	usecase authUsecase
	logger  logx.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger logx.Logger, uc authUsecase) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

// Login handles POST /login.
// @Summary Log in
// @Description Exchanges email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 401 {object} ErrorResponse "invalid credentials"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	sess, err := h.usecase.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, sessionToResponse(sess))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "email and password are required")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeError(h.logger, w, r, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// HashPassword handles POST /util/hash-password?password=... (debug builds only).
func (h *AuthHandler) HashPassword(w http.ResponseWriter, r *http.Request) {
	plain := r.URL.Query().Get("password")

	hash, err := h.usecase.HashPassword(plain)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, hashResponse{Password: plain, Hash: hash})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "password is required")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
