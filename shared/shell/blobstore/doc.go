// Package blobstore stores book cover images under opaque keys, on the local
// filesystem or in a Google Cloud Storage bucket.
package blobstore
