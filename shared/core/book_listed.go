package core

import (
	"time"

	"github.com/google/uuid"
)

// BookListedEventType is the event type identifier.
const BookListedEventType = "BookListed"

// BookListed represents when an owner put a book on the marketplace, available for swapping.
type BookListed struct {
	BookID      BookIDString
	OwnerID     UserIDString
	Title       string
	Author      string
	Description string
	CoverKey    BlobKeyString
	OccurredAt  OccurredAt
}

// BuildBookListed creates a new BookListed event.
func BuildBookListed(
	bookID uuid.UUID,
	ownerID uuid.UUID,
	title string,
	author string,
	description string,
	coverKey BlobKeyString,
	occurredAt time.Time,
) BookListed {

	event := BookListed{
		BookID:      bookID.String(),
		OwnerID:     ownerID.String(),
		Title:       title,
		Author:      author,
		Description: description,
		CoverKey:    coverKey,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookListed) IsEventType() string {
	return BookListedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookListed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookListed) IsErrorEvent() bool {
	return false
}
