package blobstore

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

const coverCacheControl = "public, max-age=86400"

// GCSStore keeps blobs as objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	logger shell.ContextualLogger
}

// NewGCSStore creates a storage client from credentialsFile, or from the application
// default credentials when credentialsFile is empty.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string, logger shell.ContextualLogger) (*GCSStore, error) {
	var clientOptions []option.ClientOption
	if credentialsFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, errors.Join(ErrStoringBlobFailed, err)
	}

	return &GCSStore{client: client, bucket: bucket, logger: logger}, nil
}

func (s *GCSStore) Put(ctx context.Context, filename string, _ string, content io.Reader) (core.BlobKeyString, error) {
	key, err := NewKey(filename)
	if err != nil {
		return "", err
	}

	contentType, err := ContentType(key)
	if err != nil {
		return "", err
	}

	writer := s.client.Bucket(s.bucket).Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = coverCacheControl

	if _, err = io.Copy(writer, content); err != nil {
		_ = writer.Close()
		return "", errors.Join(ErrStoringBlobFailed, err)
	}

	if err = writer.Close(); err != nil {
		return "", errors.Join(ErrStoringBlobFailed, err)
	}

	logInfo(ctx, s.logger, logMsgBlobStored, logAttrBlobKey, key)

	return key, nil
}

func (s *GCSStore) Open(ctx context.Context, key core.BlobKeyString) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	reader, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrOpeningBlobFailed, err)
	}

	return reader, nil
}

func (s *GCSStore) Delete(ctx context.Context, key core.BlobKeyString) {
	if ValidateKey(key) != nil {
		return
	}

	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	switch {
	case err == nil:
		logInfo(ctx, s.logger, logMsgBlobDeleted, logAttrBlobKey, key)
	case errors.Is(err, storage.ErrObjectNotExist):
		logWarn(ctx, s.logger, logMsgBlobDeleteMissing, logAttrBlobKey, key)
	default:
		logWarn(ctx, s.logger, logMsgBlobDeleteFailed, logAttrBlobKey, key, logAttrError, err.Error())
	}
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

var _ Store = (*GCSStore)(nil)
