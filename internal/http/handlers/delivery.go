package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/http/middleware"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/service/delivery"
)

const multipartMemory = 8 << 20

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase        deliveryUsecase
	logger         logx.Logger
	maxUploadBytes int64
}

// NewDeliveryHandler creates a new DeliveryHandler. maxUploadBytes caps the whole request body.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase, maxUploadBytes int64) *DeliveryHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &DeliveryHandler{usecase: uc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Register handles POST /deliveries.
// @Summary Register a delivery
// @Description Stores the photo evidence and marks the package as delivered
// @Tags deliveries
// @Accept multipart/form-data
// @Produce json
// @Param userId formData int true "Agent id"
// @Param packageId formData int true "Package id"
// @Param lat formData number true "Latitude"
// @Param lng formData number true "Longitude"
// @Param notes formData string false "Notes"
// @Param photo formData file true "Photo"
// @Success 200 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 401 {object} ErrorResponse "unauthorized"
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 404 {object} ErrorResponse "package not found"
// @Failure 409 {object} ErrorResponse "package already delivered"
// @Failure 413 {object} ErrorResponse "payload too large"
// @Router /deliveries [post]
func (h *DeliveryHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(h.logger, w, r, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	in, msg := parseSubmission(r.MultipartForm)
	if msg != "" {
		writeError(h.logger, w, r, http.StatusBadRequest, msg)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "photo is required")
		return
	}
	defer file.Close()
	in.Photo = domain.Photo{Filename: header.Filename, Size: header.Size, Content: file}

	res, err := h.usecase.Register(r.Context(), actor, in)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
			Message:    delivery.SuccessMessage,
			DeliveryID: res.DeliveryID,
			PhotoURL:   res.PhotoURL,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "cannot register deliveries for another user")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "package not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "package already delivered")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// parseSubmission reads the text fields. It returns a client message on failure.
func parseSubmission(form *multipart.Form) (domain.DeliverySubmission, string) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	var in domain.DeliverySubmission
	var err error
	if in.UserID, err = parseInt(value("userId")); err != nil {
		return in, "invalid userId"
	}
	if in.PackageID, err = parseID(value("packageId")); err != nil {
		return in, "invalid packageId"
	}
	if in.Lat, err = strconv.ParseFloat(value("lat"), 64); err != nil {
		return in, "invalid lat"
	}
	if in.Lng, err = strconv.ParseFloat(value("lng"), 64); err != nil {
		return in, "invalid lng"
	}
	in.Notes = value("notes")
	return in, ""
}
