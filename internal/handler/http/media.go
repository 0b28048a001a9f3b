package http

import (
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/dataset-hub/internal/logger"
)

// serveMedia streams an uploaded file. Seekable content supports range
// requests.
func (h *Handler) serveMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	key := chi.URLParam(r, "*")
	file, err := h.services.DatasetService.OpenFile(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Content.Close()

	w.Header().Set("Content-Type", file.ContentType)

	if seeker, ok := file.Content.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(key), time.Time{}, seeker)
		return
	}

	if file.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err = io.Copy(w, file.Content); err != nil {
		log.Err(err).Str("key", key).Msg("error streaming media file")
	}
}
