package bookdetails

import (
	"time"

	"github.com/bookswap-hub/bookswap/shared/core"
)

// BookDetails represents the current state of a listed book.
type BookDetails struct {
	BookID         core.BookIDString
	OwnerID        core.UserIDString
	Title          string
	Author         string
	Description    string
	CoverKey       core.BlobKeyString
	Status         core.BookStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r BookDetails) GetSequenceNumber() uint {
	return r.SequenceNumber
}
