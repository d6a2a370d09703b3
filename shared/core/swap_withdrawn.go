package core

import (
	"time"

	"github.com/google/uuid"
)

// SwapWithdrawnEventType is the event type identifier.
const SwapWithdrawnEventType = "SwapWithdrawn"

// SwapWithdrawn represents when one of the two parties withdrew a swap. Withdrawn swaps are gone for both parties.
type SwapWithdrawn struct {
	SwapID        SwapIDString
	WithdrawnBy   UserIDString
	OfferedBy     UserIDString
	RequestedFrom UserIDString
	OccurredAt    OccurredAt
}

// BuildSwapWithdrawn creates a new SwapWithdrawn event.
func BuildSwapWithdrawn(
	swapID SwapIDString,
	withdrawnBy uuid.UUID,
	offeredBy UserIDString,
	requestedFrom UserIDString,
	occurredAt time.Time,
) SwapWithdrawn {

	event := SwapWithdrawn{
		SwapID:        swapID,
		WithdrawnBy:   withdrawnBy.String(),
		OfferedBy:     offeredBy,
		RequestedFrom: requestedFrom,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e SwapWithdrawn) IsEventType() string {
	return SwapWithdrawnEventType
}

// HasOccurredAt returns when this event occurred.
func (e SwapWithdrawn) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e SwapWithdrawn) IsErrorEvent() bool {
	return false
}
