// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a registered account.
//
// The JSON form is the public user representation returned by every
// account endpoint. The password hash and join date never leave the server.
type User struct {
	// UserID is the unique, immutable identifier assigned on registration.
	UserID int64 `json:"id"`

	// Username is the unique login name. It is case-sensitive and may contain
	// letters, digits and the characters @ . + - _.
	Username string `json:"username"`

	// Email is optional and may be empty.
	Email string `json:"email"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// DateJoined is the registration timestamp.
	DateJoined time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfileUpdate carries the mutable profile fields of a user.
// A nil field is left unchanged.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil
}
