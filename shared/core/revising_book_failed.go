package core

import (
	"time"
)

// RevisingBookFailedEventType is the event type identifier.
const RevisingBookFailedEventType = "RevisingBookFailed"

// RevisingBookFailed represents a rejected revision of a book's details or cover.
type RevisingBookFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRevisingBookFailed creates a new RevisingBookFailed event.
func BuildRevisingBookFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) RevisingBookFailed {

	event := RevisingBookFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RevisingBookFailed) IsEventType() string {
	return RevisingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RevisingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e RevisingBookFailed) IsErrorEvent() bool {
	return true
}
