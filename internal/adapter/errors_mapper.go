package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusRequestEntityTooLarge: ErrRequestTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}

// APIError is a non-2xx response of the API. It unwraps to the sentinel
// error of its status code, so callers can test it with errors.Is.
type APIError struct {
	StatusCode int

	// Detail holds the "detail" or "error" message of the response, if any.
	Detail string

	// Fields holds per-field validation messages of a 400 response.
	Fields map[string][]string

	sentinel error
}

func (e *APIError) Error() string {
	var sb strings.Builder
	if e.sentinel != nil {
		sb.WriteString(e.sentinel.Error())
	} else {
		fmt.Fprintf(&sb, "http %d", e.StatusCode)
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(&sb, "; %s: %s", field, strings.Join(e.Fields[field], " "))
	}

	return sb.String()
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		sentinel:   statusErrors[resp.StatusCode()],
	}
	parseErrorBody(resp.Body(), apiErr)

	if apiErr.Detail == "" && len(apiErr.Fields) == 0 {
		apiErr.Detail = strings.TrimSpace(string(resp.Body()))
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode())
		}
	}

	return apiErr
}

// parseErrorBody understands the three error shapes of the API:
// {"detail": "..."}, {"error": "..."} and a field → message(s) map.
func parseErrorBody(body []byte, apiErr *APIError) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return
	}

	for key, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			if key == "detail" || key == "error" {
				apiErr.Detail = single
				continue
			}
			apiErr.addField(key, single)
			continue
		}

		var many []string
		if err := json.Unmarshal(value, &many); err == nil {
			apiErr.addField(key, many...)
		}
	}
}

func (e *APIError) addField(field string, messages ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], messages...)
}
