package core

import (
	"time"
)

// SwapAcceptedEventType is the event type identifier.
const SwapAcceptedEventType = "SwapAccepted"

// SwapAccepted represents when the requested-from user accepted a pending swap.
type SwapAccepted struct {
	SwapID        SwapIDString
	BookOffered   BookIDString
	BookRequested BookIDString
	OfferedBy     UserIDString
	RequestedFrom UserIDString
	OccurredAt    OccurredAt
}

// BuildSwapAccepted creates a new SwapAccepted event.
func BuildSwapAccepted(
	swapID SwapIDString,
	bookOffered BookIDString,
	bookRequested BookIDString,
	offeredBy UserIDString,
	requestedFrom UserIDString,
	occurredAt time.Time,
) SwapAccepted {

	event := SwapAccepted{
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
func (e SwapAccepted) IsEventType() string {
	return SwapAcceptedEventType
}

// HasOccurredAt returns when this event occurred.
func (e SwapAccepted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e SwapAccepted) IsErrorEvent() bool {
	return false
}
