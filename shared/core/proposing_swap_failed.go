package core

import (
	"time"
)

// ProposingSwapFailedEventType is the event type identifier.
const ProposingSwapFailedEventType = "ProposingSwapFailed"

// ProposingSwapFailed represents a rejected swap proposal.
type ProposingSwapFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildProposingSwapFailed creates a new ProposingSwapFailed event.
func BuildProposingSwapFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) ProposingSwapFailed {

	event := ProposingSwapFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ProposingSwapFailed) IsEventType() string {
	return ProposingSwapFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProposingSwapFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e ProposingSwapFailed) IsErrorEvent() bool {
	return true
}
