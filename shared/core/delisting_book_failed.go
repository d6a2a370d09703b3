package core

import (
	"time"
)

// DelistingBookFailedEventType is the event type identifier.
const DelistingBookFailedEventType = "DelistingBookFailed"

// DelistingBookFailed represents a rejected attempt to delist a book.
type DelistingBookFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildDelistingBookFailed creates a new DelistingBookFailed event.
func BuildDelistingBookFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) DelistingBookFailed {

	event := DelistingBookFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e DelistingBookFailed) IsEventType() string {
	return DelistingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DelistingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e DelistingBookFailed) IsErrorEvent() bool {
	return true
}
