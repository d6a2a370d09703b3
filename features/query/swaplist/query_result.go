package swaplist

import (
	"time"

	"github.com/bookswap-hub/bookswap/shared/core"
)

// BookSummary is the part of a book shown next to a swap.
// Delisted is set when the book was deleted after the swap was proposed.
type BookSummary struct {
	BookID   core.BookIDString
	Title    string
	Author   string
	CoverKey core.BlobKeyString
	Status   core.BookStatus
	Delisted bool
}

// UserSummary names a swap participant. Contact details are not part of it.
type UserSummary struct {
	UserID   core.UserIDString
	FullName string
}

// SwapInfo represents one swap with its books and participants.
type SwapInfo struct {
	SwapID        core.SwapIDString
	Status        core.SwapStatus
	BookOffered   BookSummary
	BookRequested BookSummary
	OfferedBy     UserSummary
	RequestedFrom UserSummary
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SwapList represents the query result, newest swaps first.
type SwapList struct {
	Direction      Direction
	UserID         core.UserIDString
	Swaps          []SwapInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number of both reads the projection was built from.
func (r SwapList) GetSequenceNumber() uint {
	return r.SequenceNumber
}
