package core

import (
	"time"
)

// ChangingBookStatusFailedEventType is the event type identifier.
const ChangingBookStatusFailedEventType = "ChangingBookStatusFailed"

// ChangingBookStatusFailed represents a rejected direct status change by a user who does not own the book.
type ChangingBookStatusFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildChangingBookStatusFailed creates a new ChangingBookStatusFailed event.
func BuildChangingBookStatusFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) ChangingBookStatusFailed {

	event := ChangingBookStatusFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ChangingBookStatusFailed) IsEventType() string {
	return ChangingBookStatusFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChangingBookStatusFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e ChangingBookStatusFailed) IsErrorEvent() bool {
	return true
}
