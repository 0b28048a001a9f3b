package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

func withToken(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func TestProfile(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: authenticatedAs(testUser),
		UserService: &mockUserService{
			profileFn: func(ctx context.Context, identity models.Identity) (models.User, error) {
				return identity.User, nil
			},
		},
	})

	t.Run("authenticated", func(t *testing.T) {
		rr := serve(h, withToken(httptest.NewRequest(http.MethodGet, "/users/profile/", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":7,"username":"alice","email":"alice@example.com","first_name":"Alice","last_name":""}`, rr.Body.String())
	})

	t.Run("anonymous", func(t *testing.T) {
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/users/profile/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/profile/", nil)
		req.Header.Set("Authorization", "Bearer revoked")
		rr := serve(h, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			h := newTestHandler(&service.Services{
				AuthService: authenticatedAs(testUser),
				UserService: &mockUserService{
					updateProfileFn: func(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error) {
						assert.Nil(t, request.Email)
						user := identity.User
						user.FirstName = models.Value(request.FirstName)
						return user, nil
					},
				},
			})

			rr := serve(h, withToken(jsonRequest(method, "/users/update/", `{"first_name":"Al","username":"mallory"}`)))

			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"id":7,"username":"alice","email":"alice@example.com","first_name":"Al","last_name":""}`, rr.Body.String())
		})
	}
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: authenticatedAs(testUser),
		UserService: &mockUserService{
			updateProfileFn: func(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error) {
				return models.User{}, validators.NewFieldError(validators.FieldEmail, validators.MsgInvalidEmail)
			},
		},
	})

	rr := serve(h, withToken(jsonRequest(http.MethodPatch, "/users/update/", `{"email":"nope"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"email":["Enter a valid email address."]}`, rr.Body.String())
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "changed", wantStatus: http.StatusOK},
		{
			name:       "wrong old password",
			err:        service.ErrWrongOldPassword,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"old_password":"Wrong password."}`,
		},
		{
			name:       "mismatch",
			err:        validators.NewFieldError(validators.FieldNewPassword, validators.MsgPasswordMismatch),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"new_password":["Password fields didn't match."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{
				AuthService: authenticatedAs(testUser),
				UserService: &mockUserService{
					changePasswordFn: func(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error {
						assert.Equal(t, "old", models.Value(request.OldPassword))
						return tt.err
					},
				},
			})

			rr := serve(h, withToken(jsonRequest(http.MethodPut, "/users/change-password/",
				`{"old_password":"old","new_password":"N3w!secret","new_password2":"N3w!secret"}`)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rr.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}
