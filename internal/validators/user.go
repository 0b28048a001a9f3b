// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/dataset-hub/models"
)

// Field names of user account payloads.
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldPassword2    = "password2"
	FieldEmail        = "email"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldOldPassword  = "old_password"
	FieldNewPassword  = "new_password"
	FieldNewPassword2 = "new_password2"
)

var registerSchema = schema{
	{name: FieldUsername, required: true, rules: []rule{maxLength(150), usernameChars}},
	{name: FieldPassword, required: true, rules: passwordRules},
	{name: FieldPassword2},
	{name: FieldEmail, allowBlank: true, rules: []rule{maxLength(254), emailAddress}},
	{name: FieldFirstName, allowBlank: true, rules: []rule{maxLength(150)}},
	{name: FieldLastName, allowBlank: true, rules: []rule{maxLength(150)}},
}

var updateProfileSchema = schema{
	{name: FieldEmail, allowBlank: true, rules: []rule{maxLength(254), emailAddress}},
	{name: FieldFirstName, allowBlank: true, rules: []rule{maxLength(150)}},
	{name: FieldLastName, allowBlank: true, rules: []rule{maxLength(150)}},
}

var changePasswordSchema = schema{
	{name: FieldOldPassword, required: true},
	{name: FieldNewPassword, required: true, rules: passwordRules},
	{name: FieldNewPassword2},
}

// UserValidator validates account payloads: registration, profile update
// and password change. Failures are reported as [FieldErrors].
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfile(value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfile(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(request models.RegisterRequest, fields ...string) error {
	errs, err := registerSchema.check(map[string]*string{
		FieldUsername:  request.Username,
		FieldPassword:  request.Password,
		FieldPassword2: request.Password2,
		FieldEmail:     request.Email,
		FieldFirstName: request.FirstName,
		FieldLastName:  request.LastName,
	}, fields...)
	if err != nil {
		return err
	}

	if request.Password != nil && !errs.Has(FieldPassword) &&
		similarToUsername(*request.Password, models.Value(request.Username)) {
		errs.Add(FieldPassword, MsgPasswordSimilar)
	}
	if request.Password != nil && request.Password2 != nil && *request.Password != *request.Password2 {
		errs.Add(FieldPassword2, MsgPasswordMismatch)
	}

	return errs.orNil()
}

func (v *UserValidator) validateUpdateProfile(request models.UpdateProfileRequest, fields ...string) error {
	errs, err := updateProfileSchema.check(map[string]*string{
		FieldEmail:     request.Email,
		FieldFirstName: request.FirstName,
		FieldLastName:  request.LastName,
	}, fields...)
	if err != nil {
		return err
	}

	return errs.orNil()
}

func (v *UserValidator) validateChangePassword(request models.ChangePasswordRequest, fields ...string) error {
	errs, err := changePasswordSchema.check(map[string]*string{
		FieldOldPassword:  request.OldPassword,
		FieldNewPassword:  request.NewPassword,
		FieldNewPassword2: request.NewPassword2,
	}, fields...)
	if err != nil {
		return err
	}

	if request.NewPassword != nil && request.NewPassword2 != nil && *request.NewPassword != *request.NewPassword2 {
		errs.Add(FieldNewPassword2, MsgPasswordMismatch)
	}

	return errs.orNil()
}
