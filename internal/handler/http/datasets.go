package http

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

// maxMemoryFormSize is the part of a multipart body kept in memory;
// the rest is spooled to temporary files.
const maxMemoryFormSize = 32 << 20

func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.services.DatasetService.ListDatasets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]models.DatasetResponse, 0, len(datasets))
	for _, dataset := range datasets {
		response = append(response, h.datasetResponse(r, dataset))
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	datasetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || datasetID <= 0 {
		writeError(w, r, ErrInvalidDatasetID)
		return
	}

	dataset, err := h.services.DatasetService.GetDataset(r.Context(), datasetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, h.datasetResponse(r, dataset), http.StatusOK)
}

// createDataset accepts a multipart (or urlencoded) form with title,
// description and file. Owner fields sent by the client are ignored.
func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNotAuthenticated)
		return
	}

	if h.server.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.server.MaxUploadSize)
	}

	request, file, err := parseDatasetForm(r)
	if file != nil {
		defer file.Close()
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	dataset, err := h.services.DatasetService.CreateDataset(r.Context(), identity.User, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("dataset_id", dataset.ID).Int64("owner_id", dataset.OwnerID).Msg("dataset created")
	utils.WriteJSON(w, h.datasetResponse(r, dataset), http.StatusCreated)
}

// parseDatasetForm reads the upload form. The returned file, if any, must
// be closed by the caller.
func parseDatasetForm(r *http.Request) (models.CreateDatasetRequest, multipart.File, error) {
	var request models.CreateDatasetRequest

	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		var err error
		if mediaType, _, err = mime.ParseMediaType(contentType); err != nil {
			return request, nil, unsupportedMediaType(contentType)
		}
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemoryFormSize); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return request, nil, err
			}
			return request, nil, multipartError(err)
		}
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return request, nil, err
		}
	default:
		return request, nil, unsupportedMediaType(contentType)
	}

	request.Title = formValue(r, validators.FieldTitle)
	request.Description = formValue(r, validators.FieldDescription)

	if r.MultipartForm == nil {
		return request, nil, nil
	}

	file, header, err := r.FormFile(validators.FieldFile)
	if errors.Is(err, http.ErrMissingFile) {
		return request, nil, nil
	}
	if err != nil {
		return request, nil, multipartError(err)
	}

	request.File = &models.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
	return request, file, nil
}

// formValue returns nil when the field is absent from the form.
func formValue(r *http.Request, field string) *string {
	values, ok := r.PostForm[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return models.Ptr(values[0])
}

func (h *Handler) datasetResponse(r *http.Request, dataset models.Dataset) models.DatasetResponse {
	response := models.DatasetResponse{
		ID:          dataset.ID,
		Title:       dataset.Title,
		Description: dataset.Description,
		CreatedAt:   dataset.CreatedAt,
		UpdatedAt:   dataset.UpdatedAt,
		Owner:       dataset.OwnerUsername,
	}
	if dataset.HasFile() {
		response.File = models.Ptr(h.fileURL(r, dataset.File))
	}
	return response
}

// fileURL is the absolute URL a stored file is served from.
func (h *Handler) fileURL(r *http.Request, key string) string {
	if h.app.MediaBaseURL != "" {
		return strings.TrimRight(h.app.MediaBaseURL, "/") + "/" + key
	}
	return utils.RequestBaseURL(r) + h.mediaPrefix() + key
}

func (h *Handler) mediaPrefix() string {
	return strings.TrimRight(h.server.BasePath, "/") + "/media/"
}
