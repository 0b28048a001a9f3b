// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-side login session.
//
// A session token is valid only while its Session record exists and has not
// expired, so deleting the record revokes the token immediately.
type Session struct {
	// ID is the session identifier, carried in the token's "jti" claim.
	ID string `json:"id"`

	// UserID is the owner of the session.
	UserID int64 `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsExpired reports whether the session is no longer valid at now.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the authenticated caller of a request: the user and the
// session their token refers to.
type Identity struct {
	User    User
	Session Session
}
