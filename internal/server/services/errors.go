// Package services contains server-side business logic: project ownership,
// the upload pipeline and text retrieval of stored files.
package services

import "errors"

var (
	ErrProjectIDRequired = errors.New("Project ID is required")
	ErrProjectNotFound   = errors.New("Project not found or access denied")
	ErrFileNotFound      = errors.New("File not found or access denied")
	ErrBinaryFile        = errors.New("binary files cannot be viewed as text")
	ErrTitleRequired     = errors.New("Title is required")
	ErrTitleTooLong      = errors.New("Title must be at most 200 characters")
)
