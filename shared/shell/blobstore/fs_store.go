package blobstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// FSStore keeps blobs as files in one directory.
type FSStore struct {
	dir    string
	logger shell.ContextualLogger
}

// NewFSStore creates dir if needed.
func NewFSStore(dir string, logger shell.ContextualLogger) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Join(ErrStoringBlobFailed, err)
	}

	return &FSStore{dir: dir, logger: logger}, nil
}

// Put writes content to a temporary file and renames it into place, so readers never see partial blobs.
func (s *FSStore) Put(ctx context.Context, filename string, _ string, content io.Reader) (core.BlobKeyString, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := NewKey(filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", errors.Join(ErrStoringBlobFailed, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = io.Copy(tmp, content); err != nil {
		_ = tmp.Close()
		return "", errors.Join(ErrStoringBlobFailed, err)
	}

	if err = tmp.Close(); err != nil {
		return "", errors.Join(ErrStoringBlobFailed, err)
	}

	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		return "", errors.Join(ErrStoringBlobFailed, err)
	}

	logInfo(ctx, s.logger, logMsgBlobStored, logAttrBlobKey, key)

	return key, nil
}

func (s *FSStore) Open(_ context.Context, key core.BlobKeyString) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrOpeningBlobFailed, err)
	}

	return file, nil
}

func (s *FSStore) Delete(ctx context.Context, key core.BlobKeyString) {
	if ValidateKey(key) != nil {
		return
	}

	err := os.Remove(s.path(key))
	switch {
	case err == nil:
		logInfo(ctx, s.logger, logMsgBlobDeleted, logAttrBlobKey, key)
	case errors.Is(err, fs.ErrNotExist):
		logWarn(ctx, s.logger, logMsgBlobDeleteMissing, logAttrBlobKey, key)
	default:
		logWarn(ctx, s.logger, logMsgBlobDeleteFailed, logAttrBlobKey, key, logAttrError, err.Error())
	}
}

func (s *FSStore) path(key core.BlobKeyString) string {
	return filepath.Join(s.dir, key)
}

var _ Store = (*FSStore)(nil)
