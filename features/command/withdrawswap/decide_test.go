package withdrawswap_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/features/command/withdrawswap"
	"github.com/bookswap-hub/bookswap/shared/core"
)

func Test_Decide(t *testing.T) {
	now := time.Now()
	swapID, offeredBy, requestedFrom := uuid.New(), uuid.New(), uuid.New()
	proposed := core.BuildSwapProposed(swapID, uuid.New(), uuid.New(), offeredBy, requestedFrom.String(), now.Add(-time.Hour))
	accepted := core.BuildSwapAccepted(proposed.SwapID, proposed.BookOffered, proposed.BookRequested, proposed.OfferedBy, proposed.RequestedFrom, now.Add(-time.Minute))

	for name, requester := range map[string]uuid.UUID{"offered_by": offeredBy, "requested_from": requestedFrom} {
		t.Run(name+"_may_withdraw_an_accepted_swap", func(t *testing.T) {
			// act
			result := withdrawswap.Decide(core.DomainEvents{proposed, accepted}, withdrawswap.BuildCommand(swapID, requester, now))

			// assert
			require.NoError(t, result.HasError())
			require.Len(t, result.Events, 1)
			assert.Equal(t, requester.String(), result.Events[0].(core.SwapWithdrawn).WithdrawnBy)
		})
	}

	t.Run("third_party_is_forbidden", func(t *testing.T) {
		// act
		result := withdrawswap.Decide(core.DomainEvents{proposed}, withdrawswap.BuildCommand(swapID, uuid.New(), now))

		// assert
		assert.ErrorIs(t, result.HasError(), core.ErrForbidden)
	})

	t.Run("unknown_swap_is_not_found", func(t *testing.T) {
		// act
		result := withdrawswap.Decide(core.DomainEvents{}, withdrawswap.BuildCommand(swapID, offeredBy, now))

		// assert
		assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
	})
}

func Test_BuildEventFilter_NamesEverySwapEventTypeOnce(t *testing.T) {
	// act
	filter := withdrawswap.BuildEventFilter(uuid.NewString())

	// assert
	require.Len(t, filter.Items(), 1)
	assert.ElementsMatch(t, core.SwapEventTypes(), filter.Items()[0].EventTypes())
}
