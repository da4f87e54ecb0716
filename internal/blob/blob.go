// Package blob stores uploaded images and serves them back by filename.
package blob

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/config"
)

const (
	// URLPrefix is the path images are served under.
	URLPrefix = "/api/images/"

	// CacheControl is sent with every image, stored blobs never change.
	CacheControl = "public, max-age=31536000, immutable"
)

var (
	// ErrInvalidContentType is returned for uploads that are not an accepted image type.
	ErrInvalidContentType = apperr.New(apperr.ErrValidation,
		"Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
	// ErrTooLarge is returned for uploads above the size limit.
	ErrTooLarge = apperr.New(apperr.ErrValidation, "File too large")
	// ErrEmpty is returned for uploads without content.
	ErrEmpty = apperr.New(apperr.ErrValidation, "No file provided")
	// ErrNotFound is returned for unknown filenames.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "Image not found")
	// ErrUnknownBackend is returned for a backend name without implementation.
	ErrUnknownBackend = errors.New("unknown blob backend")
)

// extensions maps the accepted image MIME types to their filename extension.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Object is a stored image.
type Object struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store persists image bytes keyed by filename.
type Store interface {
	// Put stores the object and returns its filename.
	Put(ctx context.Context, obj Object) (string, error)
	// Get returns the object or ErrNotFound.
	Get(ctx context.Context, filename string) (*Object, error)
	// Delete removes the object or returns ErrNotFound.
	Delete(ctx context.Context, filename string) error
}

// New returns the store selected by the blob configuration.
func New(ctx context.Context, cfg config.Blob, db *gorm.DB) (Store, error) {
	switch cfg.Backend {
	case config.BlobBackendDB, "":
		return NewDBStore(db), nil
	case config.BlobBackendS3:
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", cfg.Backend)
	}
}

// Validate checks an upload against the accepted types and the size limit.
func Validate(contentType string, size, maxSize int64) error {
	if size <= 0 {
		return ErrEmpty
	}

	if _, ok := extensions[normalizeContentType(contentType)]; !ok {
		return ErrInvalidContentType
	}

	if maxSize > 0 && size > maxSize {
		return ErrTooLarge
	}

	return nil
}

// NewFilename returns a fresh unique filename with the extension of contentType.
// Unknown content types get no extension.
func NewFilename(contentType string) string {
	return uuid.NewString() + extensions[normalizeContentType(contentType)]
}

// URL returns the path an image is served under.
func URL(filename string) string {
	return URLPrefix + filename
}

// normalizeContentType strips parameters such as charset.
func normalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	return strings.ToLower(strings.TrimSpace(contentType))
}
