package core

import (
	"fmt"
)

// BookStatus is the availability of a book.
type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusSwapped   BookStatus = "swapped"
)

// ParseBookStatus accepts exactly the known statuses.
func ParseBookStatus(s string) (BookStatus, error) {
	switch status := BookStatus(s); status {
	case BookStatusAvailable, BookStatusSwapped:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown book status %q", ErrValidation, s)
	}
}

// SwapStatus is the state of the swap negotiation state machine.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusAccepted SwapStatus = "accepted"
	SwapStatusRejected SwapStatus = "rejected"
)

// IsTerminal is true for accepted and rejected.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusAccepted, SwapStatusRejected:
		return true
	case SwapStatusPending:
		return false
	default:
		return true
	}
}

// CanTransitionTo allows pending→accepted and pending→rejected, nothing else.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	switch s {
	case SwapStatusPending:
		return next == SwapStatusAccepted || next == SwapStatusRejected
	case SwapStatusAccepted, SwapStatusRejected:
		return false
	default:
		return false
	}
}

// SwapDecision is what the requested-from user decides on a pending swap.
type SwapDecision string

const (
	SwapDecisionAccept SwapDecision = "accepted"
	SwapDecisionReject SwapDecision = "rejected"
)

// ParseSwapDecision accepts exactly "accepted" and "rejected".
func ParseSwapDecision(s string) (SwapDecision, error) {
	switch decision := SwapDecision(s); decision {
	case SwapDecisionAccept, SwapDecisionReject:
		return decision, nil
	default:
		return "", fmt.Errorf("%w: unknown swap decision %q", ErrValidation, s)
	}
}

// ResultingStatus is the swap status the decision leads to.
func (d SwapDecision) ResultingStatus() SwapStatus {
	if d == SwapDecisionAccept {
		return SwapStatusAccepted
	}

	return SwapStatusRejected
}
