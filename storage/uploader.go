package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader stores released artifacts such as draw archives.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// NopUploader accepts every upload and stores nothing. It is used when object
// storage is not configured.
type NopUploader struct{}

func (NopUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*UploadResult, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	return &UploadResult{Key: key}, nil
}

func (NopUploader) Delete(context.Context, string) error { return nil }

func (NopUploader) GetPublicURL(string) string { return "" }
