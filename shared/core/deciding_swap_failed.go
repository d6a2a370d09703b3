package core

import (
	"time"
)

// DecidingSwapFailedEventType is the event type identifier.
const DecidingSwapFailedEventType = "DecidingSwapFailed"

// DecidingSwapFailed represents a rejected accept or reject decision on a swap.
type DecidingSwapFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildDecidingSwapFailed creates a new DecidingSwapFailed event.
func BuildDecidingSwapFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) DecidingSwapFailed {

	event := DecidingSwapFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e DecidingSwapFailed) IsEventType() string {
	return DecidingSwapFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DecidingSwapFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e DecidingSwapFailed) IsErrorEvent() bool {
	return true
}
