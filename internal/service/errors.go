package service

import "errors"

var (
	// ErrInvalidCredentials is returned by login for an unknown user, a wrong
	// password or missing credentials alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongOldPassword is returned when a password change supplies an old
	// password that does not match.
	ErrWrongOldPassword = errors.New("wrong old password")

	// ErrSessionInvalid is returned when a session token is malformed, badly
	// signed, expired, or names a session that no longer exists.
	ErrSessionInvalid = errors.New("session is expired or invalid")

	// ErrNoUsers is returned when an operation needs an existing user and the
	// database has none.
	ErrNoUsers = errors.New("no user found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrPasswordHashing       = errors.New("password hashing failed")
)
