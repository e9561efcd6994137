package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxImportFileSize is 5MB in bytes
	MaxImportFileSize = 5 * 1024 * 1024
	// AllowedImportFormat is JSON
	AllowedImportFormat = ".json"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImportFile validates the uploaded order history file format and size
func ValidateImportFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxImportFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxImportFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != AllowedImportFormat {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", AllowedImportFormat),
		}
	}

	return nil
}

// ReadImportFile validates and reads an uploaded order history file
func ReadImportFile(fileHeader *multipart.FileHeader) (content []byte, err error) {
	if err := ValidateImportFile(fileHeader); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close uploaded file: %w", closeErr)
		}
	}()

	content, err = io.ReadAll(io.LimitReader(src, MaxImportFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(content) > MaxImportFileSize {
		return nil, &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxImportFileSize/(1024*1024)),
		}
	}
	return content, nil
}
