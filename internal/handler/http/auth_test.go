package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		header     string
		registerFn func(ctx context.Context, request models.RegisterRequest) (models.User, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"S3cure!pass","password2":"S3cure!pass","email":"alice@example.com"}`,
			registerFn: func(ctx context.Context, request models.RegisterRequest) (models.User, error) {
				assert.Equal(t, "alice", models.Value(request.Username))
				assert.Equal(t, "S3cure!pass", models.Value(request.Password2))
				return testUser, nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":7,"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":""}`,
		},
		{
			name: "validation errors",
			body: `{}`,
			registerFn: func(ctx context.Context, request models.RegisterRequest) (models.User, error) {
				return models.User{}, validators.FieldErrors{
					"username": {validators.MsgRequired},
					"password": {validators.MsgRequired},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"username":["This field is required."],"password":["This field is required."]}`,
		},
		{
			name: "username taken",
			body: `{"username":"alice","password":"S3cure!pass"}`,
			registerFn: func(ctx context.Context, request models.RegisterRequest) (models.User, error) {
				return models.User{}, validators.NewFieldError(validators.FieldUsername, validators.MsgUsernameTaken)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"username":["A user with that username already exists."]}`,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "form encoded body",
			body:       `username=alice`,
			header:     "application/x-www-form-urlencoded",
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name: "unexpected error",
			body: `{"username":"alice","password":"S3cure!pass"}`,
			registerFn: func(ctx context.Context, request models.RegisterRequest) (models.User, error) {
				return models.User{}, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"A server error occurred."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &mockAuthService{registerUserFn: tt.registerFn}})

			req := jsonRequest(http.MethodPost, "/users/register/", tt.body)
			if tt.header != "" {
				req.Header.Set("Content-Type", tt.header)
			}
			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestRegister_ParseErrorDetail(t *testing.T) {
	h := newTestHandler(nil)
	rr := serve(h, jsonRequest(http.MethodPost, "/users/register/", `not json`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"detail":"JSON parse error - `)
}

func TestLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	t.Run("success sets cookie and header", func(t *testing.T) {
		h := newTestHandler(&service.Services{AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error) {
				assert.Equal(t, "alice", request.Username)
				return testUser, models.Token{SignedString: "signed", SessionID: "s1"}, nil
			},
		}})

		rr := serve(h, jsonRequest(http.MethodPost, "/users/login/", `{"username":"alice","password":"S3cure!pass"}`))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Bearer signed", rr.Header().Get("Authorization"))
		assert.JSONEq(t, `{"id":7,"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":""}`, rr.Body.String())

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, sessionCookieName, cookie.Name)
		assert.Equal(t, "signed", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, 3600, cookie.MaxAge)
		assert.WithinDuration(t, expires, cookie.Expires, 5*time.Second)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h := newTestHandler(&service.Services{AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error) {
				return models.User{}, models.Token{}, service.ErrInvalidCredentials
			},
		}})

		rr := serve(h, jsonRequest(http.MethodPost, "/users/login/", `{"username":"alice","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, rr.Body.String())
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("GET not allowed", func(t *testing.T) {
		rr := serve(newTestHandler(nil), httptest.NewRequest(http.MethodGet, "/users/login/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.JSONEq(t, `{"detail":"Method \"GET\" not allowed."}`, rr.Body.String())
	})
}

func TestLogout(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		rr := serve(newTestHandler(nil), httptest.NewRequest(http.MethodPost, "/users/logout/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, rr.Body.String())
	})

	t.Run("deletes session and expires cookie", func(t *testing.T) {
		auth := authenticatedAs(testUser)
		var loggedOut models.Identity
		auth.logoutFn = func(ctx context.Context, identity models.Identity) error {
			loggedOut = identity
			return nil
		}
		h := newTestHandler(&service.Services{AuthService: auth})

		req := httptest.NewRequest(http.MethodPost, "/users/logout/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := serve(h, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Equal(t, "session-1", loggedOut.Session.ID)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}
