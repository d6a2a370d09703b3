package core

import (
	"time"
)

// RevisingProfileFailedEventType is the event type identifier.
const RevisingProfileFailedEventType = "RevisingProfileFailed"

// RevisingProfileFailed represents a rejected profile change, e.g. because the new email is taken.
type RevisingProfileFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRevisingProfileFailed creates a new RevisingProfileFailed event.
func BuildRevisingProfileFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) RevisingProfileFailed {

	event := RevisingProfileFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RevisingProfileFailed) IsEventType() string {
	return RevisingProfileFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RevisingProfileFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e RevisingProfileFailed) IsErrorEvent() bool {
	return true
}
