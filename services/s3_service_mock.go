package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service is an in-memory S3Interface for testing
type MockS3Service struct {
	objects map[string][]byte // map of S3 key to content
	mu      sync.RWMutex
	// FailUploads makes PutObject return an error
	FailUploads bool
	// FailPresign makes GetPresignedURL return an error
	FailPresign bool
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

// PutObject stores a copy of body under key
func (m *MockS3Service) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if m.FailUploads {
		return fmt.Errorf("failed to upload to S3: mock failure")
	}

	m.mu.Lock()
	m.objects[key] = append([]byte(nil), body...)
	m.mu.Unlock()
	return nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if m.FailPresign {
		return "", fmt.Errorf("failed to presign S3 URL: mock failure")
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("file not found in mock S3: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.eu-west-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteObject simulates deleting an object
func (m *MockS3Service) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Object returns a stored object (for testing assertions)
func (m *MockS3Service) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Keys returns the stored keys (for testing assertions)
func (m *MockS3Service) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
