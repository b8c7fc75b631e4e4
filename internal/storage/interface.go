package storage

import "context"

// ImageStore is the narrow contract handlers depend on: store bytes and
// get a URL back, retrieve bytes by key, delete by key. URLs are opaque.
// The interface allows for easy mocking in tests.
type ImageStore interface {
	UploadImage(ctx context.Context, imageData []byte, userID, originalFilename string) (*UploadResult, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

// Ensure S3Uploader implements ImageStore
var _ ImageStore = (*S3Uploader)(nil)
