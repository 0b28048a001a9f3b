package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/utils"
)

const sessionCookieName = "sessionid"

// authenticate resolves the caller from the "Authorization: Bearer" header
// and then the session cookie; the first token that names a live session
// wins. Requests without valid credentials continue anonymously and
// requireAuth decides whether that is acceptable. Storage failures while
// checking a token end the request with 500.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		for _, tokenString := range sessionTokens(r) {
			identity, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
			if errors.Is(err, service.ErrSessionInvalid) {
				log.Debug().Err(err).Msg("session token rejected")
				continue
			}
			if err != nil {
				log.Err(err).Str("func", "*Handler.authenticate").Msg("error authenticating request")
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects anonymous requests with 401 before the body is read.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentityFromContext(r.Context()); !ok {
			logger.FromRequest(r).Info().Str("uri", r.RequestURI).Msg("anonymous request to protected route")
			writeError(w, r, ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionTokens lists the candidate tokens of r in lookup order: the bearer
// header, then the session cookie. Duplicates are dropped.
func sessionTokens(r *http.Request) []string {
	tokens := make([]string, 0, 2)
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			tokens = append(tokens, token)
		}
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if len(tokens) == 0 || tokens[0] != cookie.Value {
			tokens = append(tokens, cookie.Value)
		}
	}
	return tokens
}

