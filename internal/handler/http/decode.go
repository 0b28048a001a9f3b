package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// maxJSONBodySize bounds JSON request bodies.
const maxJSONBodySize = 1 << 20

// decodeJSON reads the request body into v. An empty body decodes as {}.
// Form-encoded and other non-JSON bodies are rejected with 415.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return unsupportedMediaType(contentType)
		}
	}

	if err = json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return parseError(errors.New("invalid type for field " + typeErr.Field))
		}
		return parseError(err)
	}
	return nil
}
