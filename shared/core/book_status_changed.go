package core

import (
	"time"
)

// BookStatusChangedEventType is the event type identifier.
const BookStatusChangedEventType = "BookStatusChanged"

// BookStatusChanged represents when the availability of a book changed.
// SwapID is set when the change is a consequence of an accepted swap, empty when the owner changed it.
type BookStatusChanged struct {
	BookID     BookIDString
	OwnerID    UserIDString
	Status     BookStatus
	SwapID     SwapIDString
	OccurredAt OccurredAt
}

// BuildBookStatusChanged creates a new BookStatusChanged event.
func BuildBookStatusChanged(
	bookID BookIDString,
	ownerID UserIDString,
	status BookStatus,
	swapID SwapIDString,
	occurredAt time.Time,
) BookStatusChanged {

	event := BookStatusChanged{
		BookID:     bookID,
		OwnerID:    ownerID,
		Status:     status,
		SwapID:     swapID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookStatusChanged) IsEventType() string {
	return BookStatusChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookStatusChanged) IsErrorEvent() bool {
	return false
}
