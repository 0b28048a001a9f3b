package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/store"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrSessionInvalid:     http.StatusUnauthorized,
	service.ErrWrongOldPassword:   http.StatusBadRequest,
	ErrNotAuthenticated:           http.StatusUnauthorized,
	ErrInvalidDatasetID:           http.StatusNotFound,

	store.ErrDatasetNotFound: http.StatusNotFound,
	store.ErrFileNotFound:    http.StatusNotFound,
	store.ErrInvalidFileKey:  http.StatusNotFound,
}

var statusDetails = map[int]string{
	http.StatusUnauthorized: detailNotAuthenticated,
	http.StatusNotFound:     detailNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err with the response shape its kind calls for.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var (
		fieldErrs   validators.FieldErrors
		reqErr      *requestError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &fieldErrs):
		log.Debug().Err(err).Msg("validation failed")
		utils.WriteJSON(w, fieldErrs, http.StatusBadRequest)
	case errors.Is(err, service.ErrWrongOldPassword):
		utils.WriteJSON(w, map[string]string{validators.FieldOldPassword: detailWrongPassword}, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.WriteJSON(w, models.LoginErrorResponse{Error: errorInvalidCreds}, http.StatusUnauthorized)
	case errors.As(err, &maxBytesErr):
		log.Info().Int64("limit", maxBytesErr.Limit).Msg("request body too large")
		utils.WriteDetail(w, detailTooLarge, http.StatusRequestEntityTooLarge)
	case errors.As(err, &reqErr):
		log.Info().Err(err).Msg("malformed request")
		utils.WriteDetail(w, reqErr.detail, reqErr.status)
	default:
		status := statusFromError(err)
		detail, ok := statusDetails[status]
		if !ok {
			log.Err(err).Msg("unexpected error occurred")
			detail = detailServerError
		}
		utils.WriteDetail(w, detail, status)
	}
}
