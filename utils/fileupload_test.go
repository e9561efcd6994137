package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(filename string, size int64, content []byte) *multipart.FileHeader {
	// Create a buffer to write our multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Create form file
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/json")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	// Parse the multipart form
	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)

	if len(form.File["file"]) > 0 {
		fileHeader := form.File["file"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidateImportFile_Success(t *testing.T) {
	content := []byte(`[]`)
	fileHeader := createTestFileHeader("orders.json", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidateImportFile(fileHeader)
	assert.NoError(t, err)
}

func TestValidateImportFile_FileTooLarge(t *testing.T) {
	content := []byte(`[]`)
	fileHeader := createTestFileHeader("orders.json", 6*1024*1024, content)
	require.NotNil(t, fileHeader)

	err := ValidateImportFile(fileHeader)
	require.Error(t, err)

	uploadErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be FileUploadError")
	assert.Equal(t, "FILE_TOO_LARGE", uploadErr.Code)
}

func TestValidateImportFile_InvalidFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"csv file", "orders.csv"},
		{"text file", "orders.txt"},
		{"no extension", "orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte(`[]`)
			fileHeader := createTestFileHeader(tt.filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			err := ValidateImportFile(fileHeader)
			require.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			require.True(t, ok)
			assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)
		})
	}
}

func TestValidateImportFile_CaseInsensitiveExtension(t *testing.T) {
	content := []byte(`[]`)
	fileHeader := createTestFileHeader("ORDERS.JSON", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	assert.NoError(t, ValidateImportFile(fileHeader))
}

func TestReadImportFile(t *testing.T) {
	content := []byte(`[{"id": 1}]`)
	fileHeader := createTestFileHeader("orders.json", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	got, err := ReadImportFile(fileHeader)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}
