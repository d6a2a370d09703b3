package core

import (
	"time"

	"github.com/google/uuid"
)

// BookDelistedEventType is the event type identifier.
const BookDelistedEventType = "BookDelisted"

// BookDelisted represents when the owner removed a book from the marketplace.
type BookDelisted struct {
	BookID     BookIDString
	OwnerID    UserIDString
	CoverKey   BlobKeyString
	OccurredAt OccurredAt
}

// BuildBookDelisted creates a new BookDelisted event.
func BuildBookDelisted(
	bookID uuid.UUID,
	ownerID UserIDString,
	coverKey BlobKeyString,
	occurredAt time.Time,
) BookDelisted {

	event := BookDelisted{
		BookID:     bookID.String(),
		OwnerID:    ownerID,
		CoverKey:   coverKey,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookDelisted) IsEventType() string {
	return BookDelistedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookDelisted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookDelisted) IsErrorEvent() bool {
	return false
}
