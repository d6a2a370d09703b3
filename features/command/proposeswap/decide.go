package proposeswap

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonBookNotFound    = "offered or requested book does not exist"
	failureReasonSelfSwap        = "requested book belongs to the proposer"
	failureReasonNotOwner        = "offered book does not belong to the proposer"
	failureReasonBookUnavailable = "offered or requested book is not available"
)

// Decide creates a pending swap.
//
//	GIVEN: BookOffered owned by ProposerID, BookRequested owned by someone else, both available
//	WHEN: ProposeSwap is received
//	THEN: SwapProposed, RequestedFrom is the owner of BookRequested
//	ERROR: ErrNotFound if either book was never listed or is delisted
//	ERROR: ErrSelfSwap if ProposerID owns BookRequested
//	ERROR: ErrNotOwner if ProposerID does not own BookOffered
//	ERROR: ErrBookUnavailable if either book is swapped already
//	IDEMPOTENCY: a swap with SwapID was proposed before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	swapID := command.SwapID.String()
	proposerID := command.ProposerID.String()

	if core.FoldSwap(swapID, history).SwapID != "" {
		return core.IdempotentDecision()
	}

	books := core.FoldBooks(history)
	offered := books[command.BookOffered.String()]
	requested := books[command.BookRequested.String()]

	fail := func(reason string, err error) core.DecisionResult {
		failure := core.BuildProposingSwapFailed(swapID, proposerID, reason, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), err))
	}

	switch {
	case !offered.Exists() || !requested.Exists():
		return fail(failureReasonBookNotFound, core.ErrNotFound)
	case core.IsOwner(requested, proposerID):
		return fail(failureReasonSelfSwap, core.ErrSelfSwap)
	case !core.IsOwner(offered, proposerID):
		return fail(failureReasonNotOwner, core.ErrNotOwner)
	case !offered.IsAvailable() || !requested.IsAvailable():
		return fail(failureReasonBookUnavailable, core.ErrBookUnavailable)
	}

	return core.SuccessDecision(
		core.BuildSwapProposed(
			command.SwapID,
			command.BookOffered,
			command.BookRequested,
			command.ProposerID,
			requested.OwnerID,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter selects the histories of both books and the proposal of the swap id.
func BuildEventFilter(command Command) eventstore.Filter {
	bookTypes := core.BookEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(
			eventstore.P("BookID", command.BookOffered.String()),
			eventstore.P("BookID", command.BookRequested.String()),
		).
		OrMatching().
		AnyEventTypeOf(core.SwapProposedEventType).
		AndAnyPredicateOf(eventstore.P("SwapID", command.SwapID.String())).
		Finalize()
}
