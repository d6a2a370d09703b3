package core

import (
	"time"
)

// SwapEventTypes are the event types that make up the history of a swap.
func SwapEventTypes() []string {
	return []string{
		SwapProposedEventType,
		SwapAcceptedEventType,
		SwapRejectedEventType,
		SwapWithdrawnEventType,
	}
}

// SwapState is a swap as folded from its events.
type SwapState struct {
	SwapID        SwapIDString
	BookOffered   BookIDString
	BookRequested BookIDString
	OfferedBy     UserIDString
	RequestedFrom UserIDString
	Status        SwapStatus
	Withdrawn     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Participants implements Negotiated.
func (s SwapState) Participants() (UserIDString, UserIDString) {
	return s.OfferedBy, s.RequestedFrom
}

// Exists is true for a proposed swap that was not withdrawn.
func (s SwapState) Exists() bool {
	return s.SwapID != "" && !s.Withdrawn
}

func (s SwapState) apply(event DomainEvent) SwapState {
	switch e := event.(type) {
	case SwapProposed:
		return SwapState{
			SwapID:        e.SwapID,
			BookOffered:   e.BookOffered,
			BookRequested: e.BookRequested,
			OfferedBy:     e.OfferedBy,
			RequestedFrom: e.RequestedFrom,
			Status:        SwapStatusPending,
			CreatedAt:     e.OccurredAt,
			UpdatedAt:     e.OccurredAt,
		}

	case SwapAccepted:
		s.Status = SwapStatusAccepted
		s.UpdatedAt = e.OccurredAt

	case SwapRejected:
		s.Status = SwapStatusRejected
		s.UpdatedAt = e.OccurredAt

	case SwapWithdrawn:
		s.Withdrawn = true
		s.UpdatedAt = e.OccurredAt
	}

	return s
}

func swapIDOf(event DomainEvent) (SwapIDString, bool) {
	switch e := event.(type) {
	case SwapProposed:
		return e.SwapID, true
	case SwapAccepted:
		return e.SwapID, true
	case SwapRejected:
		return e.SwapID, true
	case SwapWithdrawn:
		return e.SwapID, true
	default:
		return "", false
	}
}

// FoldSwaps folds all swap events of the history, keyed by swap id.
// Withdrawn swaps stay in the map with Withdrawn set.
func FoldSwaps(history DomainEvents) map[SwapIDString]SwapState {
	swaps := make(map[SwapIDString]SwapState)

	for _, event := range history {
		swapID, ok := swapIDOf(event)
		if !ok {
			continue
		}

		if _, proposed := swaps[swapID]; !proposed && event.IsEventType() != SwapProposedEventType {
			continue
		}

		swaps[swapID] = swaps[swapID].apply(event)
	}

	return swaps
}

// FoldSwap returns the state of one swap, the zero SwapState if it was never proposed.
func FoldSwap(swapID SwapIDString, history DomainEvents) SwapState {
	return FoldSwaps(history)[swapID]
}
