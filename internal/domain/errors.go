package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrCardNotFound            = errors.New("business card not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrEmptyImage              = errors.New("image is empty")
	ErrInvalidDetections       = errors.New("detections do not match expected format")
	ErrInvalidFields           = errors.New("card fields are incomplete")
	ErrRecognitionFailed       = errors.New("text recognition failed")
	ErrUploadFailed            = errors.New("image upload to storage failed")
	ErrImageArchiveDisabled    = errors.New("image archive is not configured")
	ErrEmailDisabled           = errors.New("email delivery is not configured")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)
