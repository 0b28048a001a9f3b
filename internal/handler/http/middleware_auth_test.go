package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/models"
)

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantUser bool
	}{
		{name: "no credentials is anonymous", setup: func(r *http.Request) {}},
		{
			name:     "bearer header",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+testToken) },
			wantUser: true,
		},
		{
			name:     "lowercase scheme",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "bearer "+testToken) },
			wantUser: true,
		},
		{
			name:     "session cookie",
			setup:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken}) },
			wantUser: true,
		},
		{
			name: "malformed header falls back to cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
				r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken})
			},
			wantUser: true,
		},
		{
			name: "stale bearer falls back to cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer stale")
				r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken})
			},
			wantUser: true,
		},
		{
			name: "stale bearer and stale cookie are anonymous",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer stale")
				r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "old"})
			},
		},
		{
			name:  "invalid token is anonymous",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: authenticatedAs(testUser)})

			var (
				identity models.Identity
				ok       bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, ok = utils.GetIdentityFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			h.authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

			require.Equal(t, tt.wantUser, ok)
			if tt.wantUser {
				assert.Equal(t, testUser.UserID, identity.User.UserID)
				assert.Equal(t, "session-1", identity.Session.ID)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := newTestHandler(nil)
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.requireAuth(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, rr.Body.String())
	})

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(utils.WithIdentity(req.Context(), models.Identity{User: testUser}))

		rr := httptest.NewRecorder()
		h.requireAuth(next).ServeHTTP(rr, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	calls := 0
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			authenticateFn: func(ctx context.Context, tokenString string) (models.Identity, error) {
				calls++
				return models.Identity{}, errors.New("connection refused")
			},
		},
	})

	t.Run("middleware stops the request", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodGet, "/datasets/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := httptest.NewRecorder()
		h.authenticate(next).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("protected route answers 500 not 401", func(t *testing.T) {
		calls = 0
		req := httptest.NewRequest(http.MethodGet, "/users/profile/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken})

		rr := serve(h, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"detail":"A server error occurred."}`, rr.Body.String())
		assert.Equal(t, 1, calls)
	})
}

func TestSessionTokens(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, sessionTokens(req))

	req.Header.Set("Authorization", "Bearer a")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "b"})
	assert.Equal(t, []string{"a", "b"}, sessionTokens(req))

	same := httptest.NewRequest(http.MethodGet, "/", nil)
	same.Header.Set("Authorization", "Bearer a")
	same.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "a"})
	assert.Equal(t, []string{"a"}, sessionTokens(same))
}
