package storage

import (
	"context"
	"time"

	quoteapp "github.com/syncworks/backend/internal/application/quote"
)

// DisabledObjectStorage is wired when no storage credentials are configured.
// Every call fails with quoteapp.ErrStorageDisabled.
type DisabledObjectStorage struct{}

var _ quoteapp.ObjectStorage = DisabledObjectStorage{}

func (DisabledObjectStorage) GenerateUploadURL(context.Context, string, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, quoteapp.ErrStorageDisabled
}

func (DisabledObjectStorage) GenerateDownloadURL(context.Context, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, quoteapp.ErrStorageDisabled
}

func (DisabledObjectStorage) ObjectExists(context.Context, string) (bool, error) {
	return false, quoteapp.ErrStorageDisabled
}

func (DisabledObjectStorage) DeleteObject(context.Context, string) error {
	return quoteapp.ErrStorageDisabled
}

func (DisabledObjectStorage) Upload(context.Context, string, []byte, string) error {
	return quoteapp.ErrStorageDisabled
}
