// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/dataset-hub/internal/utils"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
// chi sets the Allow header before calling it.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteDetail(w, fmt.Sprintf("Method %q not allowed.", r.Method), http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteDetail(w, detailNotFound, http.StatusNotFound)
}
