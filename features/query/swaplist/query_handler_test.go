package swaplist_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/features/command/decideswap"
	"github.com/bookswap-hub/bookswap/features/command/listbook"
	"github.com/bookswap-hub/bookswap/features/command/proposeswap"
	"github.com/bookswap-hub/bookswap/features/command/registeruser"
	"github.com/bookswap-hub/bookswap/features/command/withdrawswap"
	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
)

type testMarket struct {
	store               *memengine.EventStore
	userA, userB, userC uuid.UUID
	bookA, bookB, bookC uuid.UUID
	fakeClock           time.Time
}

// givenMarket registers A, B and C with one listed book each.
func givenMarket(t *testing.T, ctx context.Context) testMarket {
	t.Helper()

	m := testMarket{
		store:     memengine.NewEventStore(),
		userA:     uuid.New(),
		userB:     uuid.New(),
		userC:     uuid.New(),
		bookA:     uuid.New(),
		bookB:     uuid.New(),
		bookC:     uuid.New(),
		fakeClock: time.Unix(0, 0).UTC(),
	}

	for _, u := range []struct {
		userID, bookID uuid.UUID
		name, title    string
	}{
		{m.userA, m.bookA, "Ada", "Dune"},
		{m.userB, m.bookB, "Bea", "Emma"},
		{m.userC, m.bookC, "Cid", "Ulysses"},
	} {
		_, err := registeruser.NewCommandHandler(m.store).Handle(ctx, registeruser.BuildCommand(u.userID, u.name, u.name+"@example.com", "", "hash", m.fakeClock))
		require.NoError(t, err)
		_, err = listbook.NewCommandHandler(m.store).Handle(ctx, listbook.BuildCommand(u.bookID, u.userID, u.title, "", "", "", m.fakeClock))
		require.NoError(t, err)
	}

	return m
}

func givenProposal(t *testing.T, ctx context.Context, m testMarket, offered, requested, proposer uuid.UUID, at time.Time) uuid.UUID {
	t.Helper()

	swapID := uuid.New()
	_, err := proposeswap.NewCommandHandler(m.store).Handle(ctx, proposeswap.BuildCommand(swapID, offered, requested, proposer, at))
	require.NoError(t, err)

	return swapID
}

func Test_QueryHandler_Handle_Received_NewestFirstWithSummaries(t *testing.T) {
	// arrange
	ctx := eventstore.WithEventualConsistency(context.Background())
	m := givenMarket(t, ctx)
	fromB := givenProposal(t, ctx, m, m.bookB, m.bookA, m.userB, m.fakeClock.Add(time.Hour))
	fromC := givenProposal(t, ctx, m, m.bookC, m.bookA, m.userC, m.fakeClock.Add(2*time.Hour))
	givenProposal(t, ctx, m, m.bookA, m.bookC, m.userA, m.fakeClock.Add(3*time.Hour))

	// act
	result, err := swaplist.NewQueryHandler(m.store).Handle(ctx, swaplist.BuildQuery(swaplist.DirectionReceived, m.userA))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, fromC.String(), result.Swaps[0].SwapID)
	assert.Equal(t, fromB.String(), result.Swaps[1].SwapID)
	assert.Equal(t, "Ulysses", result.Swaps[0].BookOffered.Title)
	assert.Equal(t, "Dune", result.Swaps[0].BookRequested.Title)
	assert.Equal(t, "Cid", result.Swaps[0].OfferedBy.FullName)
	assert.Equal(t, m.userA.String(), result.Swaps[0].RequestedFrom.UserID)
	assert.Equal(t, core.SwapStatusPending, result.Swaps[1].Status)
	assert.NotZero(t, result.GetSequenceNumber())
}

func Test_QueryHandler_Handle_Sent_ShowsDecisionsAndSkipsWithdrawals(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := givenMarket(t, ctx)
	accepted := givenProposal(t, ctx, m, m.bookB, m.bookA, m.userB, m.fakeClock.Add(time.Hour))
	withdrawn := givenProposal(t, ctx, m, m.bookB, m.bookC, m.userB, m.fakeClock.Add(2*time.Hour))
	_, err := decideswap.NewCommandHandler(m.store).Handle(ctx, decideswap.BuildCommand(accepted, m.userA, core.SwapDecisionAccept, m.fakeClock.Add(3*time.Hour)))
	require.NoError(t, err)
	_, err = withdrawswap.NewCommandHandler(m.store).Handle(ctx, withdrawswap.BuildCommand(withdrawn, m.userC, m.fakeClock.Add(4*time.Hour)))
	require.NoError(t, err)

	// act
	result, err := swaplist.NewQueryHandler(m.store).Handle(ctx, swaplist.BuildQuery(swaplist.DirectionSent, m.userB))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	swap := result.Swaps[0]
	assert.Equal(t, accepted.String(), swap.SwapID)
	assert.Equal(t, core.SwapStatusAccepted, swap.Status)
	assert.Equal(t, core.BookStatusSwapped, swap.BookOffered.Status)
	assert.Equal(t, core.BookStatusSwapped, swap.BookRequested.Status)
	assert.Equal(t, m.fakeClock.Add(3*time.Hour), swap.UpdatedAt)
}

func Test_QueryHandler_Handle_EmptyWithoutSwaps(t *testing.T) {
	// arrange
	ctx := context.Background()
	m := givenMarket(t, ctx)

	// act
	result, err := swaplist.NewQueryHandler(m.store).Handle(ctx, swaplist.BuildQuery(swaplist.DirectionReceived, m.userC))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Swaps)
}

func Test_QueryHandler_Handle_RejectsUnknownDirection(t *testing.T) {
	// act
	_, err := swaplist.NewQueryHandler(memengine.NewEventStore()).Handle(context.Background(), swaplist.BuildQuery("both", uuid.New()))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}
