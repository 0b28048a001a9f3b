// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/models"
)

// register creates a new account and responds with 201 and the user.
// The caller is not logged in by registration.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusCreated)
}

// login opens a session. The session token is returned both as the
// sessionid cookie and in the Authorization response header.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token.SignedString, h.app.SessionDuration))
	w.Header().Set("Authorization", "Bearer "+token.SignedString)

	log.Info().Int64("user_id", user.UserID).Str("session_id", token.SessionID).Msg("user logged in")
	utils.WriteJSON(w, user, http.StatusOK)
}

// logout deletes the caller's session and expires the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNotAuthenticated)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), identity); err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusOK)
}

// sessionCookie builds the sessionid cookie. A negative maxAge deletes it.
func (h *Handler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.app.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		return cookie
	}

	cookie.MaxAge = int(maxAge.Seconds())
	cookie.Expires = time.Now().Add(maxAge)
	return cookie
}
