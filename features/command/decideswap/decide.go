package decideswap

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonSwapNotFound     = "swap does not exist"
	failureReasonNotRequestedFrom = "only the owner of the requested book may decide"
	failureReasonNotPending       = "swap is not pending"
	failureReasonBookNotFound     = "offered or requested book does not exist"
	failureReasonBookUnavailable  = "offered or requested book is not available"
)

// Decide transitions a pending swap.
//
//	GIVEN: a pending swap requested from DeciderID
//	WHEN: DecideSwap is received
//	THEN: SwapRejected, or SwapAccepted plus BookStatusChanged(swapped) for both books
//	ERROR: ErrNotFound if the swap was never proposed or is withdrawn
//	ERROR: ErrForbidden if DeciderID is not RequestedFrom
//	ERROR: ErrInvalidTransition if the swap is accepted or rejected already
//	ERROR: ErrNotFound or ErrBookUnavailable on accept if a book was delisted or swapped meanwhile
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	swapID := command.SwapID.String()
	deciderID := command.DeciderID.String()
	swap := core.FoldSwap(swapID, history)

	fail := func(reason string, err error) core.DecisionResult {
		failure := core.BuildDecidingSwapFailed(swapID, deciderID, reason, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), err))
	}

	if !swap.Exists() {
		return fail(failureReasonSwapNotFound, core.ErrNotFound)
	}

	if deciderID != swap.RequestedFrom {
		return fail(failureReasonNotRequestedFrom, core.ErrForbidden)
	}

	next := command.Decision.ResultingStatus()
	if !swap.Status.CanTransitionTo(next) {
		return fail(failureReasonNotPending, core.ErrInvalidTransition)
	}

	if next == core.SwapStatusRejected {
		return core.SuccessDecision(
			core.BuildSwapRejected(
				swap.SwapID,
				swap.BookOffered,
				swap.BookRequested,
				swap.OfferedBy,
				swap.RequestedFrom,
				command.OccurredAt,
			),
		)
	}

	books := core.FoldBooks(history)
	offered := books[swap.BookOffered]
	requested := books[swap.BookRequested]

	if !offered.Exists() || !requested.Exists() {
		return fail(failureReasonBookNotFound, core.ErrNotFound)
	}

	if !offered.IsAvailable() || !requested.IsAvailable() {
		return fail(failureReasonBookUnavailable, core.ErrBookUnavailable)
	}

	return core.SuccessDecision(
		core.BuildSwapAccepted(
			swap.SwapID,
			swap.BookOffered,
			swap.BookRequested,
			swap.OfferedBy,
			swap.RequestedFrom,
			command.OccurredAt,
		),
		core.BuildBookStatusChanged(offered.BookID, offered.OwnerID, core.BookStatusSwapped, swap.SwapID, command.OccurredAt),
		core.BuildBookStatusChanged(requested.BookID, requested.OwnerID, core.BookStatusSwapped, swap.SwapID, command.OccurredAt),
	)
}

// BuildSwapFilter selects the history of the swap only. It is queried first to learn the book ids.
func BuildSwapFilter(swapID string) eventstore.Filter {
	swapTypes := core.SwapEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(swapTypes[0], swapTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("SwapID", swapID)).
		Finalize()
}

// BuildEventFilter selects the history of the swap and of the books it references.
// Without book ids it equals BuildSwapFilter.
func BuildEventFilter(swapID string, bookIDs ...string) eventstore.Filter {
	var bookPredicates []eventstore.FilterPredicate
	for _, bookID := range bookIDs {
		if bookID != "" {
			bookPredicates = append(bookPredicates, eventstore.P("BookID", bookID))
		}
	}

	if len(bookPredicates) == 0 {
		return BuildSwapFilter(swapID)
	}

	swapTypes, bookTypes := core.SwapEventTypes(), core.BookEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(swapTypes[0], swapTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("SwapID", swapID)).
		OrMatching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(bookPredicates[0], bookPredicates[1:]...).
		Finalize()
}
