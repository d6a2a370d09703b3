package bookshelf

import (
	"time"

	"github.com/bookswap-hub/bookswap/shared/core"
)

// OwnerInfo is the public profile of a book owner. Phone numbers stay private.
type OwnerInfo struct {
	UserID   core.UserIDString
	FullName string
	Email    string
}

// BookInfo represents a listed book.
type BookInfo struct {
	BookID      core.BookIDString
	Title       string
	Author      string
	Description string
	CoverKey    core.BlobKeyString
	Status      core.BookStatus
	Owner       OwnerInfo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bookshelf represents the query result, newest books first.
type Bookshelf struct {
	Books          []BookInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r Bookshelf) GetSequenceNumber() uint {
	return r.SequenceNumber
}
