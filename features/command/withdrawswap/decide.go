package withdrawswap

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonSwapNotFound   = "swap does not exist"
	failureReasonNotParticipant = "only a participant may withdraw the swap"
)

// Decide withdraws the swap.
//
//	GIVEN: a swap in any status with RequesterID as a participant
//	WHEN: WithdrawSwap is received
//	THEN: SwapWithdrawn
//	ERROR: ErrNotFound if the swap was never proposed or is withdrawn already
//	ERROR: ErrForbidden if RequesterID is not a participant
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	swapID := command.SwapID.String()
	requesterID := command.RequesterID.String()
	swap := core.FoldSwap(swapID, history)

	if !swap.Exists() {
		failure := core.BuildWithdrawingSwapFailed(swapID, requesterID, failureReasonSwapNotFound, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrNotFound))
	}

	if !core.IsParticipant(swap, requesterID) {
		failure := core.BuildWithdrawingSwapFailed(swapID, requesterID, failureReasonNotParticipant, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrForbidden))
	}

	return core.SuccessDecision(
		core.BuildSwapWithdrawn(swap.SwapID, command.RequesterID, swap.OfferedBy, swap.RequestedFrom, command.OccurredAt),
	)
}

// BuildEventFilter selects the history of the swap.
func BuildEventFilter(swapID string) eventstore.Filter {
	swapTypes := core.SwapEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(swapTypes[0], swapTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("SwapID", swapID)).
		Finalize()
}
