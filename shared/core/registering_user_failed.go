package core

import (
	"time"
)

// RegisteringUserFailedEventType is the event type identifier.
const RegisteringUserFailedEventType = "RegisteringUserFailed"

// RegisteringUserFailed represents a rejected registration, e.g. because the email is taken.
type RegisteringUserFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRegisteringUserFailed creates a new RegisteringUserFailed event.
func BuildRegisteringUserFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) RegisteringUserFailed {

	event := RegisteringUserFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RegisteringUserFailed) IsEventType() string {
	return RegisteringUserFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RegisteringUserFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e RegisteringUserFailed) IsErrorEvent() bool {
	return true
}
