// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// Dataset is a user-uploaded file together with its descriptive metadata.
type Dataset struct {
	// ID is the unique identifier of the dataset.
	ID int64

	// Title is the required human-readable name, at most 255 characters.
	Title string

	// Description is free-form text and may be empty.
	Description string

	// File is the blob storage key of the uploaded file.
	// It is empty for datasets created without a file (seeded records).
	File string

	CreatedAt time.Time
	UpdatedAt time.Time

	// OwnerID references the user who created the dataset.
	OwnerID int64

	// OwnerUsername is the owner's username, resolved on every read.
	OwnerUsername string
}

// TableName returns the name of the database table
// associated with the Dataset model.
func (d Dataset) TableName() string {
	return "datasets"
}

// HasFile reports whether a blob is attached to the dataset.
func (d Dataset) HasFile() bool {
	return d.File != ""
}

// DatasetResponse is the public JSON representation of a dataset.
//
// File is an absolute URL to the stored blob or null when no file is
// attached. Owner is the username of the creator.
type DatasetResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        *string   `json:"file"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       string    `json:"owner"`
}

// Upload describes a file received in a multipart request.
type Upload struct {
	// Name is the client-supplied file name.
	Name string

	// ContentType is the MIME type declared by the client, if any.
	ContentType string

	// Size is the length of the content in bytes.
	Size int64

	// Reader streams the file content.
	Reader io.Reader
}

// StoredFile is a blob opened for reading from file storage.
// The caller must close Content.
type StoredFile struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}
