// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
)

// Response details shared by several handlers.
const (
	detailNotFound         = "Not found."
	detailNotAuthenticated = "Authentication credentials were not provided."
	detailServerError      = "A server error occurred."
	detailTooLarge         = "Request body is too large."
	detailWrongPassword    = "Wrong password."
	errorInvalidCreds      = "Invalid credentials"
)

var (
	// ErrNotAuthenticated is reported by requireAuth for anonymous requests.
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")

	// ErrInvalidDatasetID is returned for dataset ids that are not positive integers.
	ErrInvalidDatasetID = errors.New("invalid dataset id")
)

// requestError is a client error whose detail is shown to the caller as-is.
type requestError struct {
	status int
	detail string
	err    error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.detail, e.err)
	}
	return e.detail
}

func (e *requestError) Unwrap() error {
	return e.err
}

func parseError(err error) error {
	return &requestError{status: http.StatusBadRequest, detail: "JSON parse error - " + err.Error(), err: err}
}

func multipartError(err error) error {
	return &requestError{status: http.StatusBadRequest, detail: "Multipart form parse error - " + err.Error(), err: err}
}

func unsupportedMediaType(contentType string) error {
	return &requestError{status: http.StatusUnsupportedMediaType, detail: fmt.Sprintf("Unsupported media type %q in request.", contentType)}
}
