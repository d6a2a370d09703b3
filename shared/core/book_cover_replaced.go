package core

import (
	"time"

	"github.com/google/uuid"
)

// BookCoverReplacedEventType is the event type identifier.
const BookCoverReplacedEventType = "BookCoverReplaced"

// BookCoverReplaced represents when the owner uploaded a new cover image for a book.
type BookCoverReplaced struct {
	BookID           BookIDString
	OwnerID          UserIDString
	CoverKey         BlobKeyString
	PreviousCoverKey BlobKeyString
	OccurredAt       OccurredAt
}

// BuildBookCoverReplaced creates a new BookCoverReplaced event.
func BuildBookCoverReplaced(
	bookID uuid.UUID,
	ownerID UserIDString,
	coverKey BlobKeyString,
	previousCoverKey BlobKeyString,
	occurredAt time.Time,
) BookCoverReplaced {

	event := BookCoverReplaced{
		BookID:           bookID.String(),
		OwnerID:          ownerID,
		CoverKey:         coverKey,
		PreviousCoverKey: previousCoverKey,
		OccurredAt:       ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookCoverReplaced) IsEventType() string {
	return BookCoverReplacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCoverReplaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookCoverReplaced) IsErrorEvent() bool {
	return false
}
