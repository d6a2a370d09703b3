package decideswap_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/features/command/decideswap"
	"github.com/bookswap-hub/bookswap/shared/core"
)

type fixture struct {
	userA, userB uuid.UUID
	book1, book2 uuid.UUID
	swapID       uuid.UUID
	history      core.DomainEvents
	now          time.Time
}

// givenPendingSwap: A owns book1, B owns book2, B offers book2 for book1.
func givenPendingSwap(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		userA:  uuid.New(),
		userB:  uuid.New(),
		book1:  uuid.New(),
		book2:  uuid.New(),
		swapID: uuid.New(),
		now:    time.Now(),
	}
	f.history = core.DomainEvents{
		core.BuildBookListed(f.book1, f.userA, "Book1", "", "", "", f.now.Add(-3*time.Hour)),
		core.BuildBookListed(f.book2, f.userB, "Book2", "", "", "", f.now.Add(-2*time.Hour)),
		core.BuildSwapProposed(f.swapID, f.book2, f.book1, f.userB, f.userA.String(), f.now.Add(-time.Hour)),
	}

	return f
}

func Test_Decide_Accept_FlipsBothBooksInOneDecision(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)

	// act
	result := decideswap.Decide(f.history, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionAccept, f.now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 3)
	after := append(f.history, result.Events...)
	assert.Equal(t, core.SwapStatusAccepted, core.FoldSwap(f.swapID.String(), after).Status)
	assert.Equal(t, core.BookStatusSwapped, core.FoldBook(f.book1.String(), after).Status)
	assert.Equal(t, core.BookStatusSwapped, core.FoldBook(f.book2.String(), after).Status)
	for _, event := range result.Events[1:] {
		assert.Equal(t, f.swapID.String(), event.(core.BookStatusChanged).SwapID)
	}
}

func Test_Decide_Reject_LeavesBooksAvailable(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)

	// act
	result := decideswap.Decide(f.history, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionReject, f.now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	assert.Equal(t, core.SwapRejectedEventType, result.Events[0].IsEventType())
}

func Test_Decide_SecondDecision_IsAnInvalidTransition(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)
	first := decideswap.Decide(f.history, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionAccept, f.now))
	require.NoError(t, first.HasError())
	history := append(f.history, first.Events...)

	for _, decision := range []core.SwapDecision{core.SwapDecisionAccept, core.SwapDecisionReject} {
		// act
		result := decideswap.Decide(history, decideswap.BuildCommand(f.swapID, f.userA, decision, f.now))

		// assert
		assert.ErrorIs(t, result.HasError(), core.ErrInvalidTransition)
		assert.Equal(t, core.DecidingSwapFailedEventType, result.Events[0].IsEventType())
	}
}

func Test_Decide_Forbidden_ForProposerAndThirdParty(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)

	for name, decider := range map[string]uuid.UUID{"proposer": f.userB, "third_party": uuid.New()} {
		t.Run(name, func(t *testing.T) {
			// act
			result := decideswap.Decide(f.history, decideswap.BuildCommand(f.swapID, decider, core.SwapDecisionAccept, f.now))

			// assert
			assert.ErrorIs(t, result.HasError(), core.ErrForbidden)
		})
	}
}

func Test_Decide_NotFound_ForUnknownOrWithdrawnSwap(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)
	withdrawn := append(f.history, core.BuildSwapWithdrawn(f.swapID.String(), f.userB, f.userB.String(), f.userA.String(), f.now))

	// act
	unknown := decideswap.Decide(f.history, decideswap.BuildCommand(uuid.New(), f.userA, core.SwapDecisionAccept, f.now))
	gone := decideswap.Decide(withdrawn, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionAccept, f.now))

	// assert
	assert.ErrorIs(t, unknown.HasError(), core.ErrNotFound)
	assert.ErrorIs(t, gone.HasError(), core.ErrNotFound)
}

func Test_Decide_Accept_RechecksTheBooks(t *testing.T) {
	// arrange
	f := givenPendingSwap(t)
	delisted := append(f.history, core.BuildBookDelisted(f.book2, f.userB.String(), "", f.now))
	swappedElsewhere := append(f.history, core.BuildBookStatusChanged(f.book1.String(), f.userA.String(), core.BookStatusSwapped, uuid.NewString(), f.now))

	// act
	afterDelist := decideswap.Decide(delisted, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionAccept, f.now))
	afterSwap := decideswap.Decide(swappedElsewhere, decideswap.BuildCommand(f.swapID, f.userA, core.SwapDecisionAccept, f.now))

	// assert
	assert.ErrorIs(t, afterDelist.HasError(), core.ErrNotFound)
	assert.ErrorIs(t, afterSwap.HasError(), core.ErrBookUnavailable)
}
