// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Validation messages reported in [FieldErrors].
const (
	MsgRequired          = "This field is required."
	MsgBlank             = "This field may not be blank."
	MsgInvalidEmail      = "Enter a valid email address."
	MsgInvalidUsername   = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordTooShort  = "This password is too short. It must contain at least 8 characters."
	MsgPasswordNumeric   = "This password is entirely numeric."
	MsgPasswordCommon    = "This password is too common."
	MsgPasswordSimilar   = "The password is too similar to the username."
	MsgPasswordMismatch  = "Password fields didn't match."
	MsgNoFile            = "No file was submitted."
	MsgEmptyFile         = "The submitted file is empty."
	MsgNoFileName        = "No filename could be determined."
	MsgUsernameTaken     = "A user with that username already exists."
	msgMaxLengthTemplate = "Ensure this field has no more than %d characters."
)

// FieldErrors maps a field name to the validation messages reported for it.
// It is returned as an error by validators and rendered to clients as-is.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether any message is recorded for field.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Error joins all messages in field order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, field := range fields {
		sb.WriteString(" ")
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e[field], " "))
	}
	return sb.String()
}

// orNil returns nil for an empty set so callers never see a typed nil error.
func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// NewFieldError builds a FieldErrors holding a single message.
func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}
