package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"hypewear-studio/models"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStorageService uploads finalized design rasters and preview snapshots
// to a Google Drive folder and returns their public URLs
type DriveStorageService struct {
	client   *drive.Service
	folderID string
}

// Ensure DriveStorageService implements StorageServiceInterface
var _ StorageServiceInterface = (*DriveStorageService)(nil)

// NewDriveStorageService creates a new DriveStorageService instance.
// credentialsPath should be the path to the Service Account JSON file;
// folderID is the Drive folder finalized assets are uploaded into.
func NewDriveStorageService(credentialsPath, folderID string) (*DriveStorageService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStorageService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Upload stores one file in the configured folder and returns its public URL.
// Failures wrap into an UploadError so the order submission flow can abort
// the whole finalization.
func (s *DriveStorageService) Upload(ctx context.Context, data []byte, suggestedName string) (string, error) {
	meta := &drive.File{
		Name:    suggestedName,
		Parents: []string{s.folderID},
	}

	created, err := s.client.Files.Create(meta).
		Context(ctx).
		Media(bytes.NewReader(data)).
		Fields("id").
		Do()
	if err != nil {
		return "", &models.UploadError{Name: suggestedName, Err: err}
	}

	// Anyone-with-link read permission so storefront and admin views can load it
	_, err = s.client.Permissions.Create(created.Id, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", &models.UploadError{Name: suggestedName, Err: err}
	}

	publicURL := fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id)
	log.Printf("✅ Upload: stored %s (%d bytes) -> %s", suggestedName, len(data), publicURL)
	return publicURL, nil
}
