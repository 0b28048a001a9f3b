// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Request payloads decoded from clients. Pointer fields distinguish an
// absent field (nil) from an empty one.

// RegisterRequest is the body of a registration request.
type RegisterRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Password2 *string `json:"password2,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of a profile update request.
// Only the fields present are changed.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// ProfileUpdate converts the request into the store-level update.
func (r UpdateProfileRequest) ProfileUpdate() ProfileUpdate {
	return ProfileUpdate{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// ChangePasswordRequest is the body of a password change request.
type ChangePasswordRequest struct {
	OldPassword  *string `json:"old_password"`
	NewPassword  *string `json:"new_password"`
	NewPassword2 *string `json:"new_password2,omitempty"`
}

// CreateDatasetRequest holds the form fields of a dataset upload.
// File is nil when no file part was submitted.
type CreateDatasetRequest struct {
	Title       *string
	Description *string
	File        *Upload
}

// Value dereferences an optional string, returning "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
