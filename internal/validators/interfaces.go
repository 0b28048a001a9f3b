// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the services.
//
// Every rule failure is collected into [FieldErrors], keyed by the JSON field
// name, so a single response can report all problems of a form at once.
// Rules that need the database, such as username uniqueness, live in the
// service layer instead.
package validators

import "context"

// Validator checks obj and returns [FieldErrors] (or a sentinel for an
// unsupported type). When fields are given only those fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
