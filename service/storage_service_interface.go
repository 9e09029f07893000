package service

import "context"

// StorageServiceInterface defines the contract for object storage operations
type StorageServiceInterface interface {
	Upload(ctx context.Context, data []byte, suggestedName string) (string, error)
}
