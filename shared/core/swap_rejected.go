package core

import (
	"time"
)

// SwapRejectedEventType is the event type identifier.
const SwapRejectedEventType = "SwapRejected"

// SwapRejected represents when the requested-from user rejected a pending swap.
type SwapRejected struct {
	SwapID        SwapIDString
	BookOffered   BookIDString
	BookRequested BookIDString
	OfferedBy     UserIDString
	RequestedFrom UserIDString
	OccurredAt    OccurredAt
}

// BuildSwapRejected creates a new SwapRejected event.
func BuildSwapRejected(
	swapID SwapIDString,
	bookOffered BookIDString,
	bookRequested BookIDString,
	offeredBy UserIDString,
	requestedFrom UserIDString,
	occurredAt time.Time,
) SwapRejected {

	event := SwapRejected{
		SwapID:        swapID,
		BookOffered:   bookOffered,
		BookRequested: bookRequested,
		OfferedBy:     offeredBy,
		RequestedFrom: requestedFrom,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e SwapRejected) IsEventType() string {
	return SwapRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e SwapRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e SwapRejected) IsErrorEvent() bool {
	return false
}
