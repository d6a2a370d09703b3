// Package revisebook implements the Revise Book use case of the owner route.
//
// The non-empty fields of the command are merged into the book. A new cover key replaces the
// current cover and the replaced key is recorded in BookCoverReplaced, so the caller can delete
// the previous blob. An optional status is applied like changebookstatus does.
package revisebook
