package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/dataset-hub/internal/service"
)

func TestGetServerVersion(t *testing.T) {
	h := newTestHandler(&service.Services{AppInfoService: &mockAppInfoService{version: "v1.2.3"}})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/version/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "v1.2.3", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		healthErr  error
		wantStatus int
		wantBody   string
	}{
		{name: "ok", wantStatus: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "db down", healthErr: errors.New("ping failed"), wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AppInfoService: &mockAppInfoService{
				healthFn: func(ctx context.Context) error { return tt.healthErr },
			}})

			rr := serve(h, httptest.NewRequest(http.MethodGet, "/health/", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
