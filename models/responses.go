// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DetailResponse is the generic error body: {"detail": "..."}.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// LoginErrorResponse is returned when credentials are rejected.
type LoginErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
