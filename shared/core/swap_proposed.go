package core

import (
	"time"

	"github.com/google/uuid"
)

// SwapProposedEventType is the event type identifier.
const SwapProposedEventType = "SwapProposed"

// SwapProposed represents when a user offered one of their books in exchange for another user's book.
type SwapProposed struct {
	SwapID        SwapIDString
	BookOffered   BookIDString
	BookRequested BookIDString
	OfferedBy     UserIDString
	RequestedFrom UserIDString
	OccurredAt    OccurredAt
}

// BuildSwapProposed creates a new SwapProposed event.
func BuildSwapProposed(
	swapID uuid.UUID,
	bookOffered uuid.UUID,
	bookRequested uuid.UUID,
	offeredBy uuid.UUID,
	requestedFrom UserIDString,
	occurredAt time.Time,
) SwapProposed {

	event := SwapProposed{
		SwapID:        swapID.String(),
		BookOffered:   bookOffered.String(),
		BookRequested: bookRequested.String(),
		OfferedBy:     offeredBy.String(),
		RequestedFrom: requestedFrom,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e SwapProposed) IsEventType() string {
	return SwapProposedEventType
}

// HasOccurredAt returns when this event occurred.
func (e SwapProposed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e SwapProposed) IsErrorEvent() bool {
	return false
}
