package quote

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// AllowedContentTypes is the upload allowlist. SVG is excluded since it can carry script.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heic":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// AttachmentConfig holds presign and size settings
type AttachmentConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxFileSize       int64
}

func DefaultAttachmentConfig() AttachmentConfig {
	return AttachmentConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
		MaxFileSize:       25 << 20,
	}
}

// CreateUploadURL reserves an object key on the quote and returns a
// presigned PUT URL for it
func (s *QuoteService) CreateUploadURL(ctx context.Context, companyID, id uuid.UUID, req AttachmentUploadRequest) (*AttachmentURLResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !AllowedContentTypes[contentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}
	if s.attachments.MaxFileSize > 0 && req.FileSize > s.attachments.MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d byte limit", s.attachments.MaxFileSize))
	}

	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	key := attachmentKey(companyID, q.ID, req.FileName)
	if err := q.AddAttachment(key); err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.attachments.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return &AttachmentURLResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

// CreateDownloadURL returns a presigned GET URL for one of the quote's attachments
func (s *QuoteService) CreateDownloadURL(ctx context.Context, companyID, id uuid.UUID, key string) (*AttachmentURLResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !q.HasAttachment(key) {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Attachment not found on this quote")
	}

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_UPLOADED", "Attachment has not been uploaded yet")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.attachments.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &AttachmentURLResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

// attachmentKey is quotes/<company>/<quote>/<random>-<clean file name>
func attachmentKey(companyID, quoteID uuid.UUID, fileName string) string {
	return fmt.Sprintf("quotes/%s/%s/%s-%s", companyID, quoteID, uuid.New().String()[:8], sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	return out
}
