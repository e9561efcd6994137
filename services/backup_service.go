package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Backup describes an uploaded copy of the order history
type Backup struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// BackupService stores exported order histories off-site
type BackupService interface {
	BackupOrders(ctx context.Context, export []byte) (*Backup, error)
}

// S3BackupService implements BackupService on an S3 bucket
type S3BackupService struct {
	s3  S3Interface
	now func() time.Time
}

// NewS3BackupService creates a backup service on top of s3
func NewS3BackupService(s3 S3Interface) *S3BackupService {
	return &S3BackupService{s3: s3, now: time.Now}
}

// BackupOrders uploads the export as backups/orders_<timestamp>.json and
// returns a download link valid for one hour. An upload without a link is
// removed again.
func (s *S3BackupService) BackupOrders(ctx context.Context, export []byte) (*Backup, error) {
	key := fmt.Sprintf("backups/orders_%s.json", s.now().UTC().Format("20060102T150405.000Z"))

	if err := s.s3.PutObject(ctx, key, export, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload backup: %w", err)
	}

	url, err := s.s3.GetPresignedURL(ctx, key)
	if err != nil {
		if delErr := s.s3.DeleteObject(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove backup without URL")
		}
		return nil, fmt.Errorf("failed to generate backup URL: %w", err)
	}

	return &Backup{Key: key, URL: url}, nil
}
