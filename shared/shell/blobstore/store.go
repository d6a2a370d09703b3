package blobstore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

var (
	ErrBlobNotFound      = errors.New("blob not found")
	ErrInvalidBlobKey    = errors.New("invalid blob key")
	ErrUnsupportedImage  = errors.New("cover must be a jpg, jpeg, png, gif or webp image")
	ErrStoringBlobFailed = errors.New("storing blob failed")
	ErrOpeningBlobFailed = errors.New("opening blob failed")
)

const (
	logMsgBlobStored        = "blobstore: blob stored"
	logMsgBlobDeleted       = "blobstore: blob deleted"
	logMsgBlobDeleteMissing = "blobstore: blob to delete does not exist"
	logMsgBlobDeleteFailed  = "blobstore: deleting blob failed"
	logAttrBlobKey          = "blob_key"
	logAttrError            = "error"
)

// Store keeps blobs under opaque keys.
// Delete is best effort: a missing blob is not an error and failures are only logged.
type Store interface {
	Put(ctx context.Context, filename string, contentType string, content io.Reader) (core.BlobKeyString, error)
	Open(ctx context.Context, key core.BlobKeyString) (io.ReadCloser, error)
	Delete(ctx context.Context, key core.BlobKeyString)
}

// imageContentTypes are the only media types served, keyed by key extension.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var validKey = regexp.MustCompile(`^[0-9a-f-]{36}\.(jpg|jpeg|png|gif|webp)$`)

// NewKey derives a fresh key from the uploaded filename, keeping its lowercase image extension.
// ErrUnsupportedImage for any other extension.
func NewKey(filename string) (core.BlobKeyString, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", ErrUnsupportedImage
	}

	return uuid.NewString() + ext, nil
}

// ContentType is the media type a blob is stored and served with, derived from the extension
// of a filename or key. ErrUnsupportedImage if it is not an image extension.
func ContentType(filenameOrKey string) (string, error) {
	contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(filenameOrKey))]
	if !ok {
		return "", ErrUnsupportedImage
	}

	return contentType, nil
}

// ValidateKey rejects everything that is not a key produced by NewKey.
func ValidateKey(key core.BlobKeyString) error {
	if !validKey.MatchString(key) {
		return ErrInvalidBlobKey
	}

	return nil
}

func logInfo(ctx context.Context, logger shell.ContextualLogger, msg string, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, msg, args...)
	}
}

func logWarn(ctx context.Context, logger shell.ContextualLogger, msg string, args ...any) {
	if logger != nil {
		logger.WarnContext(ctx, msg, args...)
	}
}
