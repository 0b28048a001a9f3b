// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/MKhiriev/dataset-hub/models"
)

// Field names of the dataset upload form.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldFile        = "file"
)

const maxFileNameLength = 100

var createDatasetSchema = schema{
	{name: FieldTitle, required: true, rules: []rule{maxLength(255)}},
	{name: FieldDescription, allowBlank: true},
}

// DatasetValidator validates dataset upload forms.
type DatasetValidator struct{}

func NewDatasetValidator() Validator {
	return &DatasetValidator{}
}

func (v *DatasetValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateDatasetRequest:
		return v.validateCreateDataset(value, fields...)
	case *models.CreateDatasetRequest:
		return v.validateCreateDataset(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DatasetValidator) validateCreateDataset(request models.CreateDatasetRequest, fields ...string) error {
	checkFile := len(fields) == 0 || slices.Contains(fields, FieldFile)
	formFields := slices.DeleteFunc(slices.Clone(fields), func(f string) bool { return f == FieldFile })

	errs := FieldErrors{}
	if len(fields) == 0 || len(formFields) > 0 {
		var err error
		errs, err = createDatasetSchema.check(map[string]*string{
			FieldTitle:       request.Title,
			FieldDescription: request.Description,
		}, formFields...)
		if err != nil {
			return err
		}
	}

	if checkFile {
		if msg := fileMessage(request.File); msg != "" {
			errs.Add(FieldFile, msg)
		}
	}

	return errs.orNil()
}

func fileMessage(upload *models.Upload) string {
	switch {
	case upload == nil:
		return MsgNoFile
	case upload.Name == "":
		return MsgNoFileName
	case utf8.RuneCountInString(upload.Name) > maxFileNameLength:
		return fmt.Sprintf("Ensure this filename has at most %d characters (it has %d).",
			maxFileNameLength, utf8.RuneCountInString(upload.Name))
	case upload.Size == 0:
		return MsgEmptyFile
	default:
		return ""
	}
}
