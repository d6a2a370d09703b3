// Package listbook implements the List Book use case: an owner puts a book on the marketplace.
// New books are always available. Listing the same book id again is idempotent.
package listbook
