package blobstore_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

func givenFSStore(t *testing.T) (*blobstore.FSStore, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := blobstore.NewFSStore(dir, nil)
	require.NoError(t, err)

	return store, dir
}

func Test_FSStore_PutThenOpen(t *testing.T) {
	// arrange
	store, _ := givenFSStore(t)
	ctx := context.Background()

	// act
	key, err := store.Put(ctx, "Cover.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	reader, openErr := store.Open(ctx, key)

	// assert
	require.NoError(t, openErr)
	defer reader.Close()
	content, readErr := io.ReadAll(reader)
	require.NoError(t, readErr)
	assert.Equal(t, "jpeg-bytes", string(content))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NoError(t, blobstore.ValidateKey(key))
}

func Test_FSStore_Delete_IsBestEffort(t *testing.T) {
	// arrange
	store, dir := givenFSStore(t)
	ctx := context.Background()
	key, err := store.Put(ctx, "cover.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	// act
	store.Delete(ctx, key)
	store.Delete(ctx, key)
	store.Delete(ctx, "../../etc/passwd")

	// assert
	_, statErr := os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(statErr))
	_, openErr := store.Open(ctx, key)
	assert.ErrorIs(t, openErr, blobstore.ErrBlobNotFound)
}

func Test_FSStore_Open_RejectsForeignKeys(t *testing.T) {
	// arrange
	store, _ := givenFSStore(t)

	for _, key := range []string{"", "../secret", "a/b", "cover.jpg"} {
		// act
		_, err := store.Open(context.Background(), key)

		// assert
		assert.ErrorIs(t, err, blobstore.ErrInvalidBlobKey, key)
	}
}

func Test_NewKey_KeepsImageExtensionsOnly(t *testing.T) {
	for _, filename := range []string{"cover.jpg", "Cover.JPEG", "cover.png", "cover.gif", "cover.webp"} {
		key, err := blobstore.NewKey(filename)

		require.NoError(t, err, filename)
		assert.NoError(t, blobstore.ValidateKey(key), filename)
	}

	for _, filename := range []string{"cover", "cover.html", "cover.svg", "cover.tar.gz", "cover.jpg.js", "cover.exe!"} {
		_, err := blobstore.NewKey(filename)

		assert.ErrorIs(t, err, blobstore.ErrUnsupportedImage, filename)
	}
}

func Test_ContentType_IsPinnedToTheExtension(t *testing.T) {
	testCases := []struct {
		key         string
		contentType string
	}{
		{"6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.jpg", "image/jpeg"},
		{"6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.jpeg", "image/jpeg"},
		{"6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.png", "image/png"},
		{"6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.gif", "image/gif"},
		{"6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.webp", "image/webp"},
	}

	for _, tc := range testCases {
		// act
		contentType, err := blobstore.ContentType(tc.key)

		// assert
		require.NoError(t, err)
		assert.Equal(t, tc.contentType, contentType)
	}

	_, err := blobstore.ContentType("6f1c8f7e-3b8e-4a57-9a0e-0d1d2f3e4a5b.html")
	assert.ErrorIs(t, err, blobstore.ErrUnsupportedImage)
}

func Test_FSStore_Put_RejectsNonImages(t *testing.T) {
	// arrange
	store, dir := givenFSStore(t)

	// act
	_, err := store.Put(context.Background(), "cover.html", "text/html", strings.NewReader("<script>alert(1)</script>"))

	// assert
	assert.ErrorIs(t, err, blobstore.ErrUnsupportedImage)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
