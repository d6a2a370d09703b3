// Package delistbook implements deleting a book from the marketplace.
// BookDelisted carries the cover key, so the caller can delete the blob after the append.
package delistbook
