// Package bookcatalog implements the BookCatalog operations on top of the book command and
// query slices.
//
// It owns the cover image side effects: uploaded covers are stored before the book event is
// appended, covers of rejected commands are removed again, and replaced or delisted covers
// are deleted after the event was appended. Cover deletion is best effort.
package bookcatalog
