// Package bookshelf implements the book listing query use case.
//
// The query projects all listed books from the event history and returns the ones selected by
// its scope: the available books of everybody except the asking user, the books owned by a user,
// or every book that is still listed. Each book carries a summary of its owner.
//
// This is a read-only operation, it never appends events.
package bookshelf
