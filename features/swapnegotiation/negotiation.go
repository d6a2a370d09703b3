package swapnegotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/features/command/decideswap"
	"github.com/bookswap-hub/bookswap/features/command/proposeswap"
	"github.com/bookswap-hub/bookswap/features/command/withdrawswap"
	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// Handlers are the slices the negotiation runs on. They are usually observable wrappers.
type Handlers struct {
	ProposeSwap  shell.CoreCommandHandler[proposeswap.Command]
	DecideSwap   shell.CoreCommandHandler[decideswap.Command]
	WithdrawSwap shell.CoreCommandHandler[withdrawswap.Command]
	SwapList     shell.CoreQueryHandler[swaplist.Query, swaplist.SwapList]
}

// NewHandlers creates the unwrapped handlers for the event store.
func NewHandlers(eventStore shell.EventStore, retryOptions ...shell.RetryOption) Handlers {
	return Handlers{
		ProposeSwap:  proposeswap.NewCommandHandler(eventStore, proposeswap.WithRetryOptions(retryOptions...)),
		DecideSwap:   decideswap.NewCommandHandler(eventStore, decideswap.WithRetryOptions(retryOptions...)),
		WithdrawSwap: withdrawswap.NewCommandHandler(eventStore, withdrawswap.WithRetryOptions(retryOptions...)),
		SwapList:     swaplist.NewQueryHandler(eventStore),
	}
}

// Negotiation implements SwapNegotiation.
type Negotiation struct {
	handlers Handlers
	now      func() time.Time
}

// Option configures a Negotiation.
type Option func(*Negotiation)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Negotiation) {
		n.now = now
	}
}

// NewNegotiation creates a new Negotiation.
func NewNegotiation(handlers Handlers, opts ...Option) *Negotiation {
	n := &Negotiation{
		handlers: handlers,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Propose offers bookOffered of the proposer in exchange for bookRequested and returns the pending swap.
func (n *Negotiation) Propose(
	ctx context.Context,
	bookOffered uuid.UUID,
	bookRequested uuid.UUID,
	proposerID uuid.UUID,
) (swaplist.SwapInfo, error) {

	swapID := uuid.New()
	command := proposeswap.BuildCommand(swapID, bookOffered, bookRequested, proposerID, n.now())

	if _, err := n.handlers.ProposeSwap.Handle(ctx, command); err != nil {
		return swaplist.SwapInfo{}, err
	}

	return n.find(ctx, swaplist.DirectionSent, proposerID, swapID)
}

// Decide accepts or rejects a pending swap. Only the user the swap was requested from may decide.
// Accepting marks both books as swapped in the same write.
func (n *Negotiation) Decide(
	ctx context.Context,
	swapID uuid.UUID,
	deciderID uuid.UUID,
	decision core.SwapDecision,
) (swaplist.SwapInfo, error) {

	command := decideswap.BuildCommand(swapID, deciderID, decision, n.now())
	if _, err := n.handlers.DecideSwap.Handle(ctx, command); err != nil {
		return swaplist.SwapInfo{}, err
	}

	return n.find(ctx, swaplist.DirectionReceived, deciderID, swapID)
}

// Withdraw removes the swap. Either participant may withdraw, whatever the status.
func (n *Negotiation) Withdraw(ctx context.Context, swapID uuid.UUID, requesterID uuid.UUID) error {
	_, err := n.handlers.WithdrawSwap.Handle(ctx, withdrawswap.BuildCommand(swapID, requesterID, n.now()))

	return err
}

// ListReceived returns the swaps requested from the user.
func (n *Negotiation) ListReceived(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error) {
	return n.handlers.SwapList.Handle(eventstore.WithEventualConsistency(ctx), swaplist.BuildQuery(swaplist.DirectionReceived, userID))
}

// ListSent returns the swaps offered by the user.
func (n *Negotiation) ListSent(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error) {
	return n.handlers.SwapList.Handle(eventstore.WithEventualConsistency(ctx), swaplist.BuildQuery(swaplist.DirectionSent, userID))
}

// find reads the swap back from the primary after a command changed it.
func (n *Negotiation) find(ctx context.Context, direction swaplist.Direction, userID uuid.UUID, swapID uuid.UUID) (swaplist.SwapInfo, error) {
	list, err := n.handlers.SwapList.Handle(eventstore.WithStrongConsistency(ctx), swaplist.BuildQuery(direction, userID))
	if err != nil {
		return swaplist.SwapInfo{}, err
	}

	for _, swap := range list.Swaps {
		if swap.SwapID == swapID.String() {
			return swap, nil
		}
	}

	return swaplist.SwapInfo{}, fmt.Errorf("swap %s: %w", swapID, core.ErrNotFound)
}
