package handlers

import (
	"errors"
	"net/http"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/http/middleware"
	"paquexpress-service/internal/logx"
)

// PackageHandler serves the assigned-package listing.
type PackageHandler struct {
	usecase packageUsecase
	logger  logx.Logger
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(logger logx.Logger, uc packageUsecase) *PackageHandler {
	return &PackageHandler{usecase: uc, logger: logger}
}

// ListAssigned handles GET /packages/assigned/{userId}.
// @Summary Pending packages of an agent
// @Tags packages
// @Produce json
// @Param userId path int true "Agent id"
// @Success 200 {array} packageDTO
// @Failure 400 {object} ErrorResponse "invalid id"
// @Failure 401 {object} ErrorResponse "unauthorized"
// @Failure 403 {object} ErrorResponse "forbidden"
// @Router /packages/assigned/{userId} [get]
func (h *PackageHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := userIDFromURL(r, "userId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.usecase.ListAssigned(r.Context(), actor, userID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, packagesToResponse(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "cannot list packages of another user")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
