package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/dataset-hub/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for session.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the session owner's user ID
//   - ID        (jti): the session ID
//   - IssuedAt  (iat): the session creation time
//   - ExpiresAt (exp): the session expiry time
//
// Returns an error if issuer or signKey is empty or the session has no ID.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("dataset-hub", session, "secret")
func GenerateSessionToken(issuer string, session models.Session, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || session.ID == "" || session.ExpiresAt.IsZero() {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(session.UserID, 10),
		ID:        session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: *claims,
		SignedString:     tokenString,
		UserID:           session.UserID,
		SessionID:        session.ID,
	}, nil
}

// ValidateAndParseSessionToken validates the given session token string and
// extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) and ID (jti) claim presence
//
// A valid token is not sufficient for authentication: the session it names
// must still exist in the session store.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	if parsed.ID == "" {
		return models.Token{}, errors.New("empty session id error")
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	parsed.UserID = userID
	parsed.SessionID = parsed.ID

	return *parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
