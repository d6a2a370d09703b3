package core

import (
	"time"

	"github.com/google/uuid"
)

// BookDetailsRevisedEventType is the event type identifier.
const BookDetailsRevisedEventType = "BookDetailsRevised"

// BookDetailsRevised represents when the owner changed the descriptive fields of a book.
// The event carries the complete revised values.
type BookDetailsRevised struct {
	BookID      BookIDString
	OwnerID     UserIDString
	Title       string
	Author      string
	Description string
	OccurredAt  OccurredAt
}

// BuildBookDetailsRevised creates a new BookDetailsRevised event.
func BuildBookDetailsRevised(
	bookID uuid.UUID,
	ownerID UserIDString,
	title string,
	author string,
	description string,
	occurredAt time.Time,
) BookDetailsRevised {

	event := BookDetailsRevised{
		BookID:      bookID.String(),
		OwnerID:     ownerID,
		Title:       title,
		Author:      author,
		Description: description,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookDetailsRevised) IsEventType() string {
	return BookDetailsRevisedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookDetailsRevised) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookDetailsRevised) IsErrorEvent() bool {
	return false
}
