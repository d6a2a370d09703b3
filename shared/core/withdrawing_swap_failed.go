package core

import (
	"time"
)

// WithdrawingSwapFailedEventType is the event type identifier.
const WithdrawingSwapFailedEventType = "WithdrawingSwapFailed"

// WithdrawingSwapFailed represents a rejected attempt to withdraw a swap.
type WithdrawingSwapFailed struct {
	EntityID    string
	ActorID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildWithdrawingSwapFailed creates a new WithdrawingSwapFailed event.
func BuildWithdrawingSwapFailed(
	entityID string,
	actorID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) WithdrawingSwapFailed {

	event := WithdrawingSwapFailed{
		EntityID:    entityID,
		ActorID:     actorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e WithdrawingSwapFailed) IsEventType() string {
	return WithdrawingSwapFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e WithdrawingSwapFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e WithdrawingSwapFailed) IsErrorEvent() bool {
	return true
}
